package dedup

import (
	"testing"
	"time"

	"github.com/pfrederiksen/eventsync/internal/event"
)

func jan15() time.Time {
	return time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
}

func TestDeduplicateCollapsesAcrossSources(t *testing.T) {
	events := []event.Event{
		{Name: "Jazz Night", Date: jan15(), Source: "Eventbrite"},
		{Name: "jazz night!", Date: jan15(), Source: "Ticketmaster"},
	}

	out := Deduplicate(events)
	if len(out) != 1 {
		t.Fatalf("expected 1 canonical event, got %d", len(out))
	}
	if out[0].Name != "Jazz Night" {
		t.Errorf("surviving name = %q, want first-seen %q", out[0].Name, "Jazz Night")
	}
}

func TestDeduplicateLongestDescriptionWins(t *testing.T) {
	events := []event.Event{
		{Name: "Jazz Night", Date: jan15(), Source: "Eventbrite", Description: "short"},
		{Name: "Jazz Night", Date: jan15(), Source: "Yelp", Description: "a much longer description of the evening"},
	}

	out := Deduplicate(events)
	if len(out) != 1 {
		t.Fatalf("expected 1 canonical event, got %d", len(out))
	}
	if out[0].Description != "a much longer description of the evening" {
		t.Errorf("expected the longer description to survive, got %q", out[0].Description)
	}
}

func TestDeduplicateSourceRecordsBestContributor(t *testing.T) {
	// Yelp contributes the longer description, but Ticketmaster is the
	// highest-priority contributing source.
	events := []event.Event{
		{Name: "Jazz Night", Date: jan15(), Source: "Yelp", Description: "the definitive long description"},
		{Name: "Jazz Night", Date: jan15(), Source: "Ticketmaster", Description: "short"},
	}

	out := Deduplicate(events)
	if len(out) != 1 {
		t.Fatalf("expected 1 canonical event, got %d", len(out))
	}
	if out[0].Description != "the definitive long description" {
		t.Errorf("description = %q, want the longer one", out[0].Description)
	}
	if out[0].Source != "Ticketmaster" {
		t.Errorf("source = %q, want highest-priority contributor %q", out[0].Source, "Ticketmaster")
	}
}

func TestDeduplicateTieBreaksBySourcePriority(t *testing.T) {
	events := []event.Event{
		{Name: "Jazz Night", Date: jan15(), Source: "TripAdvisor", Description: "same length"},
		{Name: "Jazz Night", Date: jan15(), Source: "Ticketmaster", Description: "equal equal"},
	}

	out := Deduplicate(events)
	if len(out) != 1 {
		t.Fatalf("expected 1 canonical event, got %d", len(out))
	}
	if out[0].Description != "equal equal" {
		t.Errorf("tie should go to the higher-priority source's entry, got %q", out[0].Description)
	}
}

func TestDeduplicateStableOrder(t *testing.T) {
	events := []event.Event{
		{Name: "Alpha", Date: jan15(), Source: "Eventbrite"},
		{Name: "Beta", Date: jan15(), Source: "Eventbrite"},
		{Name: "Alpha", Date: jan15(), Source: "Yelp"},
		{Name: "Gamma", Date: jan15(), Source: "Eventbrite"},
	}

	out := Deduplicate(events)
	if len(out) != 3 {
		t.Fatalf("expected 3 canonical events, got %d", len(out))
	}

	names := []string{out[0].Name, out[1].Name, out[2].Name}
	want := []string{"Alpha", "Beta", "Gamma"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("output[%d] = %q, want first-seen order %q", i, names[i], want[i])
		}
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	events := []event.Event{
		{Name: "Jazz Night", Date: jan15(), Source: "Eventbrite", Description: "short"},
		{Name: "Jazz Night", Date: jan15(), Source: "Ticketmaster", Description: "longer description"},
		{Name: "Food Fair", Date: jan15(), Source: "Yelp"},
	}

	once := Deduplicate(events)
	twice := Deduplicate(once)

	if len(once) != len(twice) {
		t.Fatalf("second pass changed count: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("entry %d changed on second pass: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestPriorityUnknownSourceRanksLast(t *testing.T) {
	if Priority("Ticketmaster") >= Priority("SomethingElse") {
		t.Error("known sources should rank ahead of unknown ones")
	}
	if Priority("ticketmaster") != Priority("Ticketmaster") {
		t.Error("priority lookup should be case-insensitive")
	}
}
