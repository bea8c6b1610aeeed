package osu

import "strconv"

// UserRef identifies a player either by numeric id or by username.
// The set of implementations is closed: UserID and Username.
type UserRef interface {
	// userParam returns the value of "u" and the "type" discriminator.
	userParam() (value, kind string)
}

// UserID references a player by numeric id, as in https://osu.ppy.sh/users/18267600.
type UserID int64

func (id UserID) userParam() (string, string) {
	return strconv.FormatInt(int64(id), 10), "id"
}

// String returns the decimal id.
func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Username references a player by name.
type Username string

func (n Username) userParam() (string, string) {
	return string(n), "string"
}

// String returns the name.
func (n Username) String() string {
	return string(n)
}

// ParseUserRef treats an input prefixed with "@" as a username and an
// all-digit input as an id. Anything else is a username.
func ParseUserRef(s string) UserRef {
	if len(s) > 1 && s[0] == '@' {
		return Username(s[1:])
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return UserID(id)
	}
	return Username(s)
}

// AppendUser appends the "u" key and its "type" discriminator. The remote
// service cannot tell an id from an all-digit username without it.
func AppendUser(pairs []Pair, ref UserRef) []Pair {
	value, kind := ref.userParam()
	return append(pairs,
		Pair{Key: "u", Value: value},
		Pair{Key: "type", Value: kind},
	)
}
