package kryolite

import "sync"

// Host is the set of callbacks a contract can make into the node
type Host interface {
	Exit(code int32)
	Rand() float32
	Transfer(to *Address, value uint64)
	TransferToken(from, to *Address, token *U256)
	ConsumeToken(owner *Address, token *U256)
	Approval(from, to *Address, token *U256)
	Println(typ string, value []byte)
	AppendEvent(typ string, value []byte)
	PublishEvent()
	Return(data []byte)
	SubmitState(data []byte)
}

var (
	hostMu sync.RWMutex
	host   = defaultHost()
)

// SetHost replaces the active host and returns the previous one
func SetHost(h Host) Host {
	hostMu.Lock()
	defer hostMu.Unlock()
	previous := host
	host = h
	return previous
}

func currentHost() Host {
	hostMu.RLock()
	defer hostMu.RUnlock()
	return host
}
