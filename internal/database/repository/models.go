package repository

import "time"

// DID represents a stored identifier row together with its document JSON.
type DID struct {
	ID        int64
	DID       string
	Fragment  string
	Name      string
	Document  string
	CreatedAt time.Time
}

// KeyID is the verification method id used to sign for this DID.
func (d DID) KeyID() string { return d.DID + "#" + d.Fragment }

// VC represents a stored credential row joined with its issuer and holder.
type VC struct {
	ID        int64
	Token     string
	Type      string
	SD        bool
	Issuer    DID
	Holder    DID
	CreatedAt time.Time
}
