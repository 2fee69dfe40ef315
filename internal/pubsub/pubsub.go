// Package pubsub implements channel and pattern fan-out (§4.H): exact
// channel subscribers are delivered first, then pattern subscribers via
// glob match, with each subscriber served by its own serialized delivery
// function so pub/sub pushes never interleave with that session's other
// replies mid-frame.
//
// Grounded on the teacher's handler_pubsub.go, which keeps two plain
// maps (channel->subscriber set, pattern->subscriber set) under one
// mutex; we keep that exact shape and add the reverse index
// (session->channels, session->patterns) the teacher's UNSUBSCRIBE path
// needs but never built (it only supported unsubscribing from a single
// named channel, not "unsubscribe from everything").
package pubsub

import (
	"sync"

	"github.com/vkeydb/vkeydb/internal/acl"
)

// Publisher delivers one message to a single subscriber; sessions
// implement this with a mutex-serialized writer so a pub/sub push can
// never land in the middle of another reply.
type Publisher func(channel string, pattern string, payload []byte)

type subscriber struct {
	id      int64
	deliver Publisher
}

// Registry is the server-wide pub/sub subscription table.
type Registry struct {
	mu sync.RWMutex

	channels map[string]map[int64]*subscriber
	patterns map[string]map[int64]*subscriber

	byClientChannels map[int64]map[string]bool
	byClientPatterns map[int64]map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		channels:         map[string]map[int64]*subscriber{},
		patterns:         map[string]map[int64]*subscriber{},
		byClientChannels: map[int64]map[string]bool{},
		byClientPatterns: map[int64]map[string]bool{},
	}
}

// Subscribe adds clientID as a subscriber of channel, returning the
// number of channels that client is now subscribed to (the count
// SUBSCRIBE's reply carries).
func (r *Registry) Subscribe(channel string, clientID int64, deliver Publisher) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.channels[channel] == nil {
		r.channels[channel] = map[int64]*subscriber{}
	}
	r.channels[channel][clientID] = &subscriber{id: clientID, deliver: deliver}
	if r.byClientChannels[clientID] == nil {
		r.byClientChannels[clientID] = map[string]bool{}
	}
	r.byClientChannels[clientID][channel] = true
	return len(r.byClientChannels[clientID]) + len(r.byClientPatterns[clientID])
}

func (r *Registry) Unsubscribe(channel string, clientID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.channels[channel]; ok {
		delete(set, clientID)
		if len(set) == 0 {
			delete(r.channels, channel)
		}
	}
	delete(r.byClientChannels[clientID], channel)
	return len(r.byClientChannels[clientID]) + len(r.byClientPatterns[clientID])
}

// UnsubscribeAllChannels returns the channels clientID was subscribed to
// (PUBSUB's UNSUBSCRIBE-with-no-args form) after removing them all.
func (r *Registry) UnsubscribeAllChannels(clientID int64) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []string
	for ch := range r.byClientChannels[clientID] {
		removed = append(removed, ch)
		if set, ok := r.channels[ch]; ok {
			delete(set, clientID)
			if len(set) == 0 {
				delete(r.channels, ch)
			}
		}
	}
	delete(r.byClientChannels, clientID)
	return removed
}

func (r *Registry) PSubscribe(pattern string, clientID int64, deliver Publisher) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.patterns[pattern] == nil {
		r.patterns[pattern] = map[int64]*subscriber{}
	}
	r.patterns[pattern][clientID] = &subscriber{id: clientID, deliver: deliver}
	if r.byClientPatterns[clientID] == nil {
		r.byClientPatterns[clientID] = map[string]bool{}
	}
	r.byClientPatterns[clientID][pattern] = true
	return len(r.byClientChannels[clientID]) + len(r.byClientPatterns[clientID])
}

func (r *Registry) PUnsubscribe(pattern string, clientID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.patterns[pattern]; ok {
		delete(set, clientID)
		if len(set) == 0 {
			delete(r.patterns, pattern)
		}
	}
	delete(r.byClientPatterns[clientID], pattern)
	return len(r.byClientChannels[clientID]) + len(r.byClientPatterns[clientID])
}

func (r *Registry) UnsubscribeAllPatterns(clientID int64) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []string
	for p := range r.byClientPatterns[clientID] {
		removed = append(removed, p)
		if set, ok := r.patterns[p]; ok {
			delete(set, clientID)
			if len(set) == 0 {
				delete(r.patterns, p)
			}
		}
	}
	delete(r.byClientPatterns, clientID)
	return removed
}

// DisconnectClient removes clientID from every channel and pattern it
// was subscribed to, used on session teardown.
func (r *Registry) DisconnectClient(clientID int64) {
	r.UnsubscribeAllChannels(clientID)
	r.UnsubscribeAllPatterns(clientID)
}

// Publish delivers payload to every exact-channel subscriber first, then
// every pattern subscriber whose pattern matches channel, returning the
// total number of receivers (PUBLISH's reply).
func (r *Registry) Publish(channel string, payload []byte) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	receivers := 0
	for _, sub := range r.channels[channel] {
		sub.deliver(channel, "", payload)
		receivers++
	}
	for pattern, subs := range r.patterns {
		if !acl.GlobMatch(pattern, channel) {
			continue
		}
		for _, sub := range subs {
			sub.deliver(channel, pattern, payload)
			receivers++
		}
	}
	return receivers
}

// ChannelsMatching returns the currently active channel names matching
// pattern (PUBSUB CHANNELS).
func (r *Registry) ChannelsMatching(pattern string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for ch, subs := range r.channels {
		if len(subs) == 0 {
			continue
		}
		if pattern == "" || acl.GlobMatch(pattern, ch) {
			out = append(out, ch)
		}
	}
	return out
}

// NumSub returns the subscriber count for each requested channel
// (PUBSUB NUMSUB).
func (r *Registry) NumSub(channels []string) map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int, len(channels))
	for _, ch := range channels {
		out[ch] = len(r.channels[ch])
	}
	return out
}

// NumPat returns the number of active pattern subscriptions (PUBSUB NUMPAT).
func (r *Registry) NumPat() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patterns)
}
