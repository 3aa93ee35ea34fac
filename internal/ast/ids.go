package ast

type (
	ScopeID uint32
	DeclID  uint32
)

const (
	NoScopeID ScopeID = 0
	NoDeclID  DeclID  = 0
)

func (id ScopeID) IsValid() bool { return id != NoScopeID }
func (id DeclID) IsValid() bool  { return id != NoDeclID }
