package server

import (
	"net/netip"
	"sort"
	"sync"
)

// Registry maps channel names to the set of subscriber addresses.
// Channel entries are never removed once created.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]map[netip.AddrPort]struct{}
}

func NewRegistry() *Registry {
	return &Registry{channels: make(map[string]map[netip.AddrPort]struct{})}
}

// Subscribe adds addr to channel, creating the channel if needed.
// It reports whether addr was newly added.
func (r *Registry) Subscribe(channel string, addr netip.AddrPort) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.channels[channel]
	if !ok {
		set = make(map[netip.AddrPort]struct{})
		r.channels[channel] = set
	}
	if _, exists := set[addr]; exists {
		return false
	}
	set[addr] = struct{}{}
	return true
}

// Unsubscribe removes addr from channel. Absent channels and addresses
// are ignored. It reports whether anything was removed.
func (r *Registry) Unsubscribe(channel string, addr netip.AddrPort) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.channels[channel]
	if !ok {
		return false
	}
	if _, exists := set[addr]; !exists {
		return false
	}
	delete(set, addr)
	return true
}

// Subscribers returns a sorted copy of the channel's subscriber set and
// whether the channel has ever been subscribed to.
func (r *Registry) Subscribers(channel string) ([]netip.AddrPort, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.channels[channel]
	if !ok {
		return nil, false
	}
	out := make([]netip.AddrPort, 0, len(set))
	for addr := range set {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out, true
}

// Channels returns every known channel name in sorted order.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.channels))
	for name := range r.channels {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Snapshot copies the whole registry as channel -> address strings.
func (r *Registry) Snapshot() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]string, len(r.channels))
	for name, set := range r.channels {
		addrs := make([]netip.AddrPort, 0, len(set))
		for addr := range set {
			addrs = append(addrs, addr)
		}
		sort.Slice(addrs, func(i, j int) bool { return addrs[i].Compare(addrs[j]) < 0 })
		list := make([]string, 0, len(addrs))
		for _, addr := range addrs {
			list = append(list, addr.String())
		}
		out[name] = list
	}
	return out
}
