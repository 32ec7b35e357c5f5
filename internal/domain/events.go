package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventReachabilityChanged       EventType = "ReachabilityChanged"
	EventCategoriesFetchStarted    EventType = "CategoriesFetchStarted"
	EventCategoriesFetchCompleted  EventType = "CategoriesFetchCompleted"
	EventBestSellersFetchCompleted EventType = "BestSellersFetchCompleted"
	EventError                     EventType = "Error"
	EventConfigLoaded              EventType = "ConfigLoaded"
	EventConfigSaved               EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ReachabilityChangedEvent is emitted on every connectivity transition
type ReachabilityChangedEvent struct {
	Reachable bool
	Address   string
}

func (e ReachabilityChangedEvent) Type() EventType { return EventReachabilityChanged }

// CategoriesFetchStartedEvent is emitted when a category fetch hits the network
type CategoriesFetchStartedEvent struct{}

func (e CategoriesFetchStartedEvent) Type() EventType { return EventCategoriesFetchStarted }

// CategoriesFetchCompletedEvent is emitted when a category fetch finishes
type CategoriesFetchCompletedEvent struct {
	Count    int
	Err      error
	Duration time.Duration
}

func (e CategoriesFetchCompletedEvent) Type() EventType { return EventCategoriesFetchCompleted }

// BestSellersFetchCompletedEvent is emitted when a category's list has been fetched
type BestSellersFetchCompletedEvent struct {
	ListKey string
	Count   int
	Err     error
}

func (e BestSellersFetchCompletedEvent) Type() EventType { return EventBestSellersFetchCompleted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
