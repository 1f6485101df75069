package domain

import "time"

// EventKind identifies what a monitoring Event reports.
type EventKind string

const (
	// EventNewSubdomains reports hostnames seen for the first time on a domain.
	EventNewSubdomains EventKind = "NEW_SUBDOMAINS"
	// EventScanError reports a domain that could not be scanned in this cycle.
	EventScanError EventKind = "SCAN_ERROR"
	// EventPersistError reports new hostnames that were found but could not be recorded.
	EventPersistError EventKind = "PERSIST_ERROR"
	// EventCycleClean reports a completed cycle in which no domain produced new hostnames.
	EventCycleClean EventKind = "CYCLE_CLEAN"
)

// Event is a structured notification emitted by the monitor. Which fields are set
// depends on Kind:
//   - EventNewSubdomains: Domain, Hostnames
//   - EventScanError: Domain, Message (Domain is empty when the monitored list could not be loaded)
//   - EventPersistError: Domain, Hostnames, Message
//   - EventCycleClean: Domains, NextScanIn
type Event struct {
	Kind EventKind `json:"kind"`
	// Domain is the monitored domain the event is about.
	Domain string `json:"domain,omitempty"`
	// Hostnames are the newly discovered names, in discovery order.
	Hostnames []string `json:"hostnames,omitempty"`
	// Message is a human-readable failure description.
	Message string `json:"message,omitempty"`
	// Domains lists every domain checked in a clean cycle.
	Domains []string `json:"domains,omitempty"`
	// NextScanIn is the time until the next cycle begins.
	NextScanIn time.Duration `json:"nextScanIn,omitempty"`
	// OccurredAt is when the event was produced.
	OccurredAt time.Time `json:"occurredAt"`
}

// NewSubdomainsEvent builds an EventNewSubdomains event.
func NewSubdomainsEvent(domain string, hostnames []string) Event {
	return Event{Kind: EventNewSubdomains, Domain: domain, Hostnames: hostnames, OccurredAt: time.Now()}
}

// ScanErrorEvent builds an EventScanError event.
func ScanErrorEvent(domain string, msg string) Event {
	return Event{Kind: EventScanError, Domain: domain, Message: msg, OccurredAt: time.Now()}
}

// PersistErrorEvent builds an EventPersistError event.
func PersistErrorEvent(domain string, hostnames []string, msg string) Event {
	return Event{Kind: EventPersistError, Domain: domain, Hostnames: hostnames, Message: msg, OccurredAt: time.Now()}
}

// CycleCleanEvent builds an EventCycleClean event.
func CycleCleanEvent(domains []string, nextScanIn time.Duration) Event {
	return Event{Kind: EventCycleClean, Domains: domains, NextScanIn: nextScanIn, OccurredAt: time.Now()}
}
