package kryolite

// KRC721 is the non-fungible token interface a contract can declare with
// //kryolite:interface kryolite.KRC721 -Methods=...
type KRC721 interface {
	BalanceOf(owner Address) uint64
	OwnerOf(tokenID U256) Address
	Approve(to Address, tokenID U256)
	GetApproved(tokenID U256) Address
	TransferFrom(from, to Address, tokenID U256, data []byte)
}

// KRC721Metadata describes a token collection
type KRC721Metadata interface {
	Name() string
	Symbol() string
	TokenURI(tokenID U256) string
}

// StandardToken is the common token description returned by GetToken
type StandardToken struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// KryoliteStandardToken is implemented by contracts that describe their tokens
type KryoliteStandardToken interface {
	GetToken(tokenID U256) StandardToken
}

// KRC721Event reports token movements to the host ledger
var KRC721Event krc721Events

type krc721Events struct{}

// Transfer records that a token moved from one owner to another
func (krc721Events) Transfer(from, to *Address, tokenID *U256) {
	currentHost().TransferToken(from, to, tokenID)
}

// Consume records that a token was burned
func (krc721Events) Consume(owner *Address, tokenID *U256) {
	currentHost().ConsumeToken(owner, tokenID)
}

// Approval records that a token may be moved by another address
func (krc721Events) Approval(from, to *Address, tokenID *U256) {
	currentHost().Approval(from, to, tokenID)
}
