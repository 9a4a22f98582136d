package fogbugz

import (
	"context"
	"errors"
	"testing"
)

func TestIssuesEndToEnd(t *testing.T) {
	f := newFakeService(t)
	f.handle("listStatuses", statusListing)
	f.handle("listPeople", `<response><people>
<person><ixPerson>5</ixPerson><sFullName>Alice</sFullName></person>
</people></response>`)
	f.handle("viewProject", `<response><project><ixProject>7</ixProject><sProject>Core</sProject></project></response>`)
	f.handle("search", `<response><cases>
<case><ixBug>100</ixBug><ixStatus>2</ixStatus><sTitle>Bug</sTitle><sLatestTextSummary>desc</sLatestTextSummary><ixPersonOpenedBy>5</ixPersonOpenedBy><dtOpened>2020-01-01</dtOpened></case>
</cases></response>`)

	issues, err := f.client().Issues(context.Background(), "R1", []string{"7"})
	if err != nil {
		t.Fatalf("Issues() error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}

	issue := issues[0]
	if issue.ID != "100" {
		t.Fatalf("expected id 100, got %s", issue.ID)
	}
	if issue.Status != "Resolved" || !issue.Resolved {
		t.Fatalf("expected resolved status, got %+v", issue)
	}
	if issue.Title != "Bug" || issue.Description != "desc" {
		t.Fatalf("unexpected title/description in %+v", issue)
	}
	if issue.Release != "R1" {
		t.Fatalf("expected release R1, got %s", issue.Release)
	}
	if issue.Submitter != "Alice" || issue.Submitted != "2020-01-01" {
		t.Fatalf("unexpected submitter fields in %+v", issue)
	}
	if issue.URL != f.srv.URL+"/default.asp?100" {
		t.Fatalf("unexpected detail URL %s", issue.URL)
	}

	q := f.queryFor("search")
	if q.Get("q") != `fixfor:"R1" project:"Core"` {
		t.Fatalf("unexpected search query %q", q.Get("q"))
	}
	if q.Get("cols") != issueColumns {
		t.Fatalf("unexpected columns %q", q.Get("cols"))
	}
	if q := f.queryFor("viewProject"); q.Get("ixProject") != "7" {
		t.Fatalf("expected project lookup for category 7")
	}
}

func TestIssuesWithoutCategorySkipsProjectClause(t *testing.T) {
	f := newFakeService(t)
	f.handle("listStatuses", statusListing)
	f.handle("listPeople", `<response><people/></response>`)
	f.handle("search", `<response><cases/></response>`)

	issues, err := f.client().Issues(context.Background(), "R1", nil)
	if err != nil {
		t.Fatalf("Issues() error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %d", len(issues))
	}
	if f.queryFor("viewProject") != nil {
		t.Fatalf("expected no project lookup without a category filter")
	}
	if q := f.queryFor("search"); q.Get("q") != `fixfor:"R1"` {
		t.Fatalf("unexpected search query %q", q.Get("q"))
	}
}

func TestCategories(t *testing.T) {
	f := newFakeService(t)
	f.handle("listProjects", `<response><projects>
<project><ixProject>7</ixProject><sProject>Core</sProject></project>
<project><ixProject>9</ixProject><sProject>Website</sProject></project>
</projects></response>`)

	categories, err := f.client().Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories() error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].ID != "7" || categories[0].Name != "Core" {
		t.Fatalf("unexpected category %+v", categories[0])
	}
}

func TestCloseIssue(t *testing.T) {
	f := newFakeService(t)
	f.handle("close", `<response/>`)

	if err := f.client().CloseIssue(context.Background(), "42"); err != nil {
		t.Fatalf("CloseIssue() error: %v", err)
	}
	if q := f.queryFor("close"); q.Get("ixBug") != "42" || q.Get("token") != "tok-1" {
		t.Fatalf("unexpected close arguments %v", q)
	}
}

func TestAppendComment(t *testing.T) {
	f := newFakeService(t)
	f.handle("edit", `<response/>`)

	if err := f.client().AppendComment(context.Background(), "42", "deployed to staging"); err != nil {
		t.Fatalf("AppendComment() error: %v", err)
	}
	if q := f.queryFor("edit"); q.Get("sEvent") != "deployed to staging" {
		t.Fatalf("unexpected edit arguments %v", q)
	}
}

func TestChangeStatusForReleaseFiltersByStatus(t *testing.T) {
	f := newFakeService(t)
	f.handle("listStatuses", statusListing)
	f.handle("listPeople", `<response><people/></response>`)
	f.handle("search", `<response><cases>
<case><ixBug>100</ixBug><ixStatus>1</ixStatus><sTitle>A</sTitle></case>
<case><ixBug>101</ixBug><ixStatus>2</ixStatus><sTitle>B</sTitle></case>
</cases></response>`)
	f.handle("resolve", `<response/>`)

	err := f.client().ChangeStatusForRelease(context.Background(), "R1", nil, "active", "Resolved")
	if err != nil {
		t.Fatalf("ChangeStatusForRelease() error: %v", err)
	}

	var resolved []string
	for i, cmd := range f.commands {
		if cmd == "resolve" {
			resolved = append(resolved, f.queries[i].Get("ixBug"))
		}
	}
	if len(resolved) != 1 || resolved[0] != "100" {
		t.Fatalf("expected only case 100 to change status, got %v", resolved)
	}
}

func TestChangeStatusForReleaseStopsOnFailure(t *testing.T) {
	f := newFakeService(t)
	f.handle("listStatuses", statusListing)
	f.handle("listPeople", `<response><people/></response>`)
	f.handle("search", `<response><cases>
<case><ixBug>100</ixBug><ixStatus>1</ixStatus></case>
<case><ixBug>101</ixBug><ixStatus>1</ixStatus></case>
</cases></response>`)
	f.handle("resolve", `<response><error code="7">Case has changed</error></response>`)

	err := f.client().ChangeStatusForRelease(context.Background(), "R1", nil, "Active", "Resolved")

	var remoteErr RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	var attempts int
	for _, cmd := range f.commands {
		if cmd == "resolve" {
			attempts++
		}
	}
	if attempts != 1 {
		t.Fatalf("expected to stop after first failure, saw %d attempts", attempts)
	}
}
