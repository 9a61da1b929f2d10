package store

import "strconv"

type ScopeKind uint8

const (
	ScopeGlobal ScopeKind = iota
	ScopeGroup
	ScopeProfile
	ScopeFollow
)

// Scope selects which posts are candidates for a feed
type Scope struct {
	Kind     ScopeKind
	GroupID  uint64 // ScopeGroup
	AuthorID uint64 // ScopeProfile
	ViewerID uint64 // ScopeFollow: posts of authors followed by this user
}

func Global() Scope {
	return Scope{Kind: ScopeGlobal}
}

func ByGroup(groupID uint64) Scope {
	return Scope{Kind: ScopeGroup, GroupID: groupID}
}

func ByAuthor(authorID uint64) Scope {
	return Scope{Kind: ScopeProfile, AuthorID: authorID}
}

func ByFollower(viewerID uint64) Scope {
	return Scope{Kind: ScopeFollow, ViewerID: viewerID}
}

func (s Scope) String() string {
	switch s.Kind {
	case ScopeGroup:
		return "group:" + strconv.FormatUint(s.GroupID, 10)
	case ScopeProfile:
		return "profile:" + strconv.FormatUint(s.AuthorID, 10)
	case ScopeFollow:
		return "follow:" + strconv.FormatUint(s.ViewerID, 10)
	}
	return "index"
}
