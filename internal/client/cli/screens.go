package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/eventsync/eventsync/internal/client/meetings"
	"github.com/eventsync/eventsync/internal/client/models"
	"github.com/eventsync/eventsync/internal/client/routes"
	"github.com/eventsync/eventsync/internal/client/signup"
)

func (a *App) prompt(label string) (string, error) {
	return GetSimpleText(a.reader, label, a.out)
}

func (a *App) password(label string) (string, error) {
	pw, err := GetPassword(a.out, label)
	if err != nil {
		return "", err
	}
	defer wipe(pw)
	return string(pw), nil
}

func (a *App) hasArg(name string) bool {
	for _, arg := range a.args {
		if arg == name {
			return true
		}
	}
	return false
}

func (a *App) loadingScreen(ctx context.Context) (routes.Intent, error) {
	fmt.Fprintln(a.out, "Loading...")
	return routes.Intent{}, nil
}

func (a *App) homeScreen(ctx context.Context) (routes.Intent, error) {
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Signed in as %s. Type 'calendar' to see your meetings.\n", a.state.Snapshot().User().Email)
		return routes.Intent{}, nil
	}
	fmt.Fprintln(a.out, "EventSync keeps your team's meetings in one place.")
	fmt.Fprintln(a.out, "Type 'login' to sign in or 'signup' to create an account.")
	return routes.Intent{}, nil
}

func (a *App) unauthorizedScreen(ctx context.Context) (routes.Intent, error) {
	fmt.Fprintln(a.out, "You do not have access to this page.")
	return routes.Intent{}, nil
}

func (a *App) loginScreen(ctx context.Context) (routes.Intent, error) {
	if a.isLoggedIn() {
		return routes.Redirect(routes.Landing, ""), nil
	}

	email, err := a.prompt("Email")
	if err != nil {
		return routes.Intent{}, err
	}
	pw, err := a.password("Password: ")
	if err != nil {
		return routes.Intent{}, err
	}

	in, err := a.auth.Login(ctx, email, pw, a.nav.From())
	if err != nil {
		return routes.Intent{}, err
	}
	fmt.Fprintln(a.out, "Login successful")
	return in, nil
}

// signupScreen serves all three signup routes. The wizard's step decides
// which form is shown; a mismatching route is corrected first.
func (a *App) signupScreen(ctx context.Context) (routes.Intent, error) {
	w := a.wizard
	if a.hasArg("restart") || w.Step() == signup.StepDone {
		w.Restart(ctx)
	}
	if w.Step() == signup.StepEmail {
		w.Resume(ctx)
	}

	step := w.Step()
	if route := step.Route(); route != a.nav.Location() {
		return routes.Redirect(route, ""), nil
	}

	switch step {
	case signup.StepVerify:
		return a.signupVerify(ctx)
	case signup.StepComplete:
		return a.signupComplete(ctx)
	default:
		return a.signupEmail(ctx)
	}
}

func (a *App) signupEmail(ctx context.Context) (routes.Intent, error) {
	email, err := a.prompt("Email")
	if err != nil {
		return routes.Intent{}, err
	}
	if err := a.wizard.SubmitEmail(ctx, email); err != nil {
		return routes.Intent{}, err
	}
	return routes.Go(signup.StepVerify.Route()), nil
}

func (a *App) signupVerify(ctx context.Context) (routes.Intent, error) {
	w := a.wizard
	label := fmt.Sprintf("Enter the code sent to %s ('resend' for a new code, 'restart' to start over)", w.Email())
	code, err := a.prompt(label)
	if err != nil {
		return routes.Intent{}, err
	}

	switch code {
	case "resend":
		if err := w.Resend(ctx); err != nil {
			return routes.Intent{}, err
		}
		fmt.Fprintln(a.out, "A new code is on its way.")
		return routes.Intent{}, nil
	case "restart":
		w.Restart(ctx)
		return routes.Redirect(routes.Signup, ""), nil
	}

	if err := w.SubmitCode(ctx, code); err != nil {
		if w.Step() == signup.StepEmail {
			return routes.Redirect(routes.Signup, ""), err
		}
		return routes.Intent{}, err
	}
	return routes.Go(signup.StepComplete.Route()), nil
}

func (a *App) signupComplete(ctx context.Context) (routes.Intent, error) {
	name, err := a.prompt("Full name")
	if err != nil {
		return routes.Intent{}, err
	}
	pw, err := a.password("Password: ")
	if err != nil {
		return routes.Intent{}, err
	}
	confirm, err := a.password("Confirm password: ")
	if err != nil {
		return routes.Intent{}, err
	}

	in, err := a.wizard.SubmitProfile(ctx, name, pw, confirm)
	if err == nil {
		fmt.Fprintln(a.out, "Account created.")
	}
	if in.IsZero() && a.wizard.Step() == signup.StepEmail {
		in = routes.Redirect(routes.Signup, "")
	}
	return in, err
}

// forgotPasswordScreen requests a reset code, then asks for the code and
// the new password in one go.
func (a *App) forgotPasswordScreen(ctx context.Context) (routes.Intent, error) {
	email, err := a.prompt("Email")
	if err != nil {
		return routes.Intent{}, err
	}
	if err := a.auth.RequestPasswordReset(ctx, email); err != nil {
		return routes.Intent{}, err
	}
	fmt.Fprintln(a.out, "If the address is registered, a reset code has been sent.")

	code, err := a.prompt("Reset code")
	if err != nil {
		return routes.Intent{}, err
	}
	pw, err := a.password("New password: ")
	if err != nil {
		return routes.Intent{}, err
	}

	in, err := a.auth.ResetPassword(ctx, email, code, pw)
	if err != nil {
		return routes.Intent{}, err
	}
	fmt.Fprintln(a.out, "Password updated. You can log in now.")
	return in, nil
}

// parseQuery reads key=value arguments: q, status, priority and sort.
func parseQuery(args []string) meetings.Query {
	q := meetings.Query{Status: meetings.All, Priority: meetings.All, SortBy: meetings.SortByDate}
	var terms []string
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			terms = append(terms, arg)
			continue
		}
		switch strings.ToLower(k) {
		case "q":
			terms = append(terms, v)
		case "status":
			q.Status = strings.ToUpper(v)
		case "priority":
			q.Priority = strings.ToUpper(v)
		case "sort":
			q.SortBy = strings.ToLower(v)
		}
	}
	q.Search = strings.Join(terms, " ")
	return q
}

func (a *App) calendarScreen(ctx context.Context) (routes.Intent, error) {
	list, err := a.meetings.List(ctx, parseQuery(a.args))
	if err != nil {
		return routes.Intent{}, err
	}
	printMeetings(a.out, list)
	return routes.Intent{}, nil
}

func printMeetings(w io.Writer, list []models.Meeting) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No meetings found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tWHEN\tSTATUS\tPRIORITY\tTEAM")
	for _, m := range list {
		when := "-"
		if m.ScheduledAt != nil {
			when = m.ScheduledAt.Local().Format("2006-01-02 15:04")
		}
		team := m.Team.Name
		if team == "" {
			team = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", m.ID, m.Title, when, m.Status, m.Priority, team)
	}
	tw.Flush()
}

func (a *App) profileScreen(ctx context.Context) (routes.Intent, error) {
	if a.hasArg("edit") {
		if err := a.editProfile(ctx); err != nil {
			return routes.Intent{}, err
		}
		fmt.Fprintln(a.out, "Profile updated.")
	}

	u := a.state.Snapshot().User()
	fmt.Fprintf(a.out, "Name:     %s\n", u.Name)
	fmt.Fprintf(a.out, "Email:    %s\n", u.Email)
	fmt.Fprintf(a.out, "Admin:    %t\n", u.IsAdmin)
	fmt.Fprintf(a.out, "Verified: %t\n", u.IsVerified)
	if u.TeamID != "" {
		fmt.Fprintf(a.out, "Team:     %s\n", u.TeamID)
	}
	return routes.Intent{}, nil
}

func (a *App) editProfile(ctx context.Context) error {
	name, err := a.prompt("New name (empty to keep)")
	if err != nil {
		return err
	}
	newPw, err := a.password("New password (empty to keep): ")
	if err != nil {
		return err
	}
	var current string
	if newPw != "" {
		if current, err = a.password("Current password: "); err != nil {
			return err
		}
	}
	return a.auth.UpdateProfile(ctx, models.ProfileUpdate{Name: name, CurrentPassword: current, NewPassword: newPw})
}

func (a *App) adminScreen(ctx context.Context) (routes.Intent, error) {
	counts, err := a.meetings.StatusCounts(ctx)
	if err != nil {
		return routes.Intent{}, err
	}

	statuses := make([]string, 0, len(counts))
	total := 0
	for s, n := range counts {
		statuses = append(statuses, s)
		total += n
	}
	sort.Strings(statuses)

	fmt.Fprintf(a.out, "Meetings: %d\n", total)
	for _, s := range statuses {
		fmt.Fprintf(a.out, "  %-10s %d\n", s, counts[s])
	}
	return routes.Intent{}, nil
}
