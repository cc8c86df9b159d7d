package models

// Storage is the snapshot shape written to the persistence file. Tokens are
// included so a restart shortly after /gettoken does not strand the user.
type Storage struct {
	Identities map[IdentityID]*CanonicalIdentity `json:"identities"`
	Bindings   map[string]IdentityID             `json:"bindings"`
	States     map[IdentityID]*EmotionalState    `json:"states"`
	Alerts     map[IdentityID]*AlertRecord       `json:"alerts"`
	Tokens     map[string]*LinkToken             `json:"tokens"`
}

func NewStorage() *Storage {
	return &Storage{
		Identities: make(map[IdentityID]*CanonicalIdentity),
		Bindings:   make(map[string]IdentityID),
		States:     make(map[IdentityID]*EmotionalState),
		Alerts:     make(map[IdentityID]*AlertRecord),
		Tokens:     make(map[string]*LinkToken),
	}
}
