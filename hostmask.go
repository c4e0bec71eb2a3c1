package plugbind

import (
	"strings"

	"github.com/opd-ai/plugbind/cstr"
)

// Nick extracts the nick portion of an IRC-style prefix. One leading
// ':' sentinel is stripped; anything before the first '!' (or the
// whole prefix, for a server name with no user part) is the nick.
//
//	Nick(":alice!alice@example.net") == "alice"
func Nick(prefix string) string {
	prefix = strings.TrimPrefix(prefix, ":")
	parts, err := cstr.Split(prefix, "!", 2)
	if err != nil {
		// No user part: the prefix is the nick (or server name).
		return strings.TrimRight(prefix, "\r\n")
	}
	return parts[0]
}

// SplitHostmask decomposes a full "nick!user@host" prefix. A leading
// ':' sentinel is stripped. Prefixes missing either separator return
// an error rather than partially filled results.
func SplitHostmask(prefix string) (nick, user, hostname string, err error) {
	prefix = strings.TrimPrefix(prefix, ":")

	parts, err := cstr.Split(prefix, "!", 2)
	if err != nil {
		return "", "", "", err
	}
	nick = parts[0]

	parts, err = cstr.Split(parts[1], "@", 2)
	if err != nil {
		return "", "", "", err
	}
	return nick, parts[0], parts[1], nil
}
