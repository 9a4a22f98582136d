package fogbugz

import (
	"context"
	"testing"
)

func TestCreateRelease(t *testing.T) {
	f := newFakeService(t)
	f.handle("newFixFor", `<response><fixfor><ixFixFor>12</ixFixFor></fixfor></response>`)

	if err := f.client().CreateRelease(context.Background(), "R1", []string{"7"}); err != nil {
		t.Fatalf("CreateRelease() error: %v", err)
	}

	q := f.queryFor("newFixFor")
	if q == nil {
		t.Fatalf("expected newFixFor command, commands were %v", f.commands)
	}
	if q.Get("sFixFor") != "R1" || q.Get("ixProject") != "7" || q.Get("fAssignable") != "1" {
		t.Fatalf("unexpected newFixFor arguments %v", q)
	}
}

func TestCreateReleaseWithoutCategoryIsNoOp(t *testing.T) {
	f := newFakeService(t)

	if err := f.client().CreateRelease(context.Background(), "R1", nil); err != nil {
		t.Fatalf("CreateRelease() error: %v", err)
	}
	if len(f.commands) != 0 {
		t.Fatalf("expected no remote calls, saw %v", f.commands)
	}
}

func TestCloseRelease(t *testing.T) {
	f := newFakeService(t)
	f.handle("viewFixFor", `<response><fixfor><ixFixFor>12</ixFixFor><sFixFor>R1</sFixFor></fixfor></response>`)
	f.handle("editFixFor", `<response/>`)

	if err := f.client().CloseRelease(context.Background(), "R1", []string{"7"}); err != nil {
		t.Fatalf("CloseRelease() error: %v", err)
	}

	q := f.queryFor("editFixFor")
	if q == nil {
		t.Fatalf("expected editFixFor command, commands were %v", f.commands)
	}
	if q.Get("ixFixFor") != "12" || q.Get("sFixFor") != "R1" || q.Get("fAssignable") != "0" {
		t.Fatalf("unexpected editFixFor arguments %v", q)
	}
}

func TestCloseReleaseMissingMilestoneIsNoOp(t *testing.T) {
	f := newFakeService(t)
	f.handle("viewFixFor", `<response><fixfor></fixfor></response>`)

	if err := f.client().CloseRelease(context.Background(), "R1", []string{"7"}); err != nil {
		t.Fatalf("CloseRelease() error: %v", err)
	}
	for _, cmd := range f.commands {
		if cmd == "editFixFor" {
			t.Fatalf("expected no edit for a missing milestone, commands were %v", f.commands)
		}
	}
}

func TestCloseReleaseWithoutCategoryIsNoOp(t *testing.T) {
	f := newFakeService(t)

	if err := f.client().CloseRelease(context.Background(), "R1", nil); err != nil {
		t.Fatalf("CloseRelease() error: %v", err)
	}
	if len(f.commands) != 0 {
		t.Fatalf("expected no remote calls, saw %v", f.commands)
	}
}
