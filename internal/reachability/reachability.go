package reachability

import (
	"context"
	"log"
	"net"
	"sync"
	"time"

	"bookshelf/internal/eventbus"
)

// Monitor reports current connectivity and notifies on transitions
type Monitor interface {
	Reachable() bool
	OnChange(fn func(reachable bool)) (unsubscribe func())
}

// DialFunc opens a connection, matching net.Dialer.DialContext
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Prober checks connectivity by opening a TCP connection to a fixed
// address on an interval. Transitions are published on the event bus
// as ReachabilityChangedEvent and OnChange subscribes to them there.
type Prober struct {
	bus      eventbus.EventBus
	address  string
	interval time.Duration
	timeout  time.Duration
	dial     DialFunc

	mu        sync.Mutex
	reachable bool
	checked   bool
	running   bool
}

// NewProber creates a prober for address (host:port)
func NewProber(bus eventbus.EventBus, address string, interval, timeout time.Duration) *Prober {
	d := &net.Dialer{}
	return &Prober{
		bus:       bus,
		address:   address,
		interval:  interval,
		timeout:   timeout,
		dial:      d.DialContext,
		reachable: true,
	}
}

// SetDialer replaces the dial function, for tests
func (p *Prober) SetDialer(dial DialFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dial = dial
}

// Reachable returns the last probe result. Before the first probe it
// probes synchronously.
func (p *Prober) Reachable() bool {
	p.mu.Lock()
	checked, reachable := p.checked, p.reachable
	p.mu.Unlock()

	if !checked {
		return p.Check(context.Background())
	}
	return reachable
}

// OnChange subscribes fn to reachability transitions
func (p *Prober) OnChange(fn func(reachable bool)) func() {
	return p.bus.Subscribe(eventbus.EventReachabilityChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ReachabilityChangedEvent); ok && event.Address == p.address {
			fn(event.Reachable)
		}
	})
}

// Check probes once, records the result and publishes a transition
func (p *Prober) Check(ctx context.Context) bool {
	p.mu.Lock()
	dial := p.dial
	p.mu.Unlock()

	dialCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	reachable := true
	conn, err := dial(dialCtx, "tcp", p.address)
	if err != nil {
		reachable = false
	} else {
		_ = conn.Close()
	}

	p.mu.Lock()
	changed := p.reachable != reachable
	p.reachable = reachable
	p.checked = true
	p.mu.Unlock()

	if changed {
		if reachable {
			log.Printf("Reachability: %s reachable", p.address)
		} else {
			log.Printf("Reachability: %s unreachable: %v", p.address, err)
		}
		p.bus.Publish(eventbus.ReachabilityChangedEvent{Reachable: reachable, Address: p.address})
	}

	return reachable
}

// Start probes on every interval until ctx is cancelled
func (p *Prober) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			p.running = false
			p.mu.Unlock()
		}()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Check(ctx)
			}
		}
	}()
}

// Static is a Monitor with a fixed answer and no transitions. It backs
// the --offline flag.
type Static bool

func (s Static) Reachable() bool { return bool(s) }

func (s Static) OnChange(func(bool)) func() { return func() {} }
