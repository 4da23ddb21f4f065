package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

func TestStudentLoginFlow(t *testing.T) {
	skipUnlessEnabled(t)
	app := newTestApp(t)
	page := app.newPage(t)

	app.loginStudent(t, page)

	heading, err := page.Locator("h1").First().TextContent()
	if err != nil {
		t.Fatalf("failed to read dashboard heading: %v", err)
	}
	if !strings.Contains(heading, "Ann") {
		t.Errorf("dashboard heading = %q, want student name", heading)
	}

	// Profile tab is the default: registration number should be listed.
	body, err := page.Locator("body").TextContent()
	if err != nil {
		t.Fatalf("failed to read page body: %v", err)
	}
	if !strings.Contains(body, "21BCE100") {
		t.Error("profile tab does not show registration number")
	}
}

func TestStudentLoginRejectedShowsError(t *testing.T) {
	skipUnlessEnabled(t)
	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/student-login"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if err := page.Locator("input[name=registration_number]").Fill("21BCE100"); err != nil {
		t.Fatalf("failed to fill: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("wrong-password"); err != nil {
		t.Fatalf("failed to fill: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click: %v", err)
	}

	if err := page.Locator(".error").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("error message did not appear: %v", err)
	}
	msg, err := page.Locator(".error").TextContent()
	if err != nil {
		t.Fatalf("failed to read error: %v", err)
	}
	if !strings.Contains(msg, "Invalid credentials") {
		t.Errorf("error = %q, want upstream message", msg)
	}

	// Sticky form: the registration number survives the round trip.
	val, err := page.Locator("input[name=registration_number]").InputValue()
	if err != nil {
		t.Fatalf("failed to read input: %v", err)
	}
	if val != "21BCE100" {
		t.Errorf("registration number = %q, want sticky value", val)
	}
}

func TestAnonymousDashboardRedirectsToLogin(t *testing.T) {
	skipUnlessEnabled(t)
	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/student-profile"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if !strings.HasSuffix(page.URL(), "/student-login") {
		t.Errorf("URL = %q, want redirect to student login", page.URL())
	}
}

func TestLogoutEndsSession(t *testing.T) {
	skipUnlessEnabled(t)
	app := newTestApp(t)
	page := app.newPage(t)

	app.loginStudent(t, page)

	if err := page.Locator("button.logout").Click(); err != nil {
		t.Fatalf("failed to click logout: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/student-login", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("logout did not return to login: %v", err)
	}

	// Session gone: the dashboard bounces straight back.
	if _, err := page.Goto(app.BaseURL + "/student-profile"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if !strings.HasSuffix(page.URL(), "/student-login") {
		t.Errorf("URL = %q, want redirect after logout", page.URL())
	}
}
