// Package cli implements the interactive terminal session.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pantrychef/internal/app"
	"pantrychef/internal/catalog"
	"pantrychef/internal/match"
	"pantrychef/internal/planner"
	"pantrychef/internal/shopping"
)

const welcome = `========================================
Welcome to PantryChef!

This tool helps you decide what to cook based on the ingredients you
have on hand, and generates shopping lists and meal plans.
========================================`

// Session drives one interactive run against the app.
type Session struct {
	app *app.App
	in  *bufio.Scanner
	out io.Writer
}

// NewSession reads prompt answers from in and writes to out.
func NewSession(application *app.App, in io.Reader, out io.Writer) *Session {
	return &Session{app: application, in: bufio.NewScanner(in), out: out}
}

// Run walks the suggest, shop, plan flow once. Closed input ends the
// session without error.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, welcome)
	fmt.Fprintln(s.out)

	resp, err := s.promptSuggest(ctx)
	if err != nil {
		return err
	}
	if resp == nil {
		return nil
	}

	s.printSuggestions(resp)

	selected, ok := s.chooseRecipes(resp)
	if !ok {
		fmt.Fprintln(s.out, "\nExiting PantryChef. Goodbye!")
		return nil
	}

	s.printShoppingList(selected)
	s.offerPlan(selected)

	fmt.Fprintln(s.out, "\nThank you for using PantryChef!")
	return nil
}

func (s *Session) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// promptSuggest asks for ingredients until it gets a usable list. A nil
// response means the input was closed.
func (s *Session) promptSuggest(ctx context.Context) (*app.SuggestResponse, error) {
	for {
		line, ok := s.readLine("Enter the ingredients you have (comma separated): ")
		if !ok {
			fmt.Fprintln(s.out, "\nExiting PantryChef. Goodbye!")
			return nil, nil
		}

		resp, err := s.app.Suggest(ctx, app.SuggestRequest{Text: line})
		if errors.Is(err, app.ErrNoIngredients) {
			fmt.Fprintln(s.out, "Please enter at least one ingredient, e.g. pasta, tomato, cheese.")
			continue
		}
		if err != nil {
			return nil, err
		}
		return resp, nil
	}
}

func (s *Session) printSuggestions(resp *app.SuggestResponse) {
	fmt.Fprintln(s.out, "\nRecipe Suggestions:")

	idx := 1
	section := func(header string, results []match.Result) {
		if len(results) == 0 {
			return
		}
		fmt.Fprintf(s.out, "\n%s\n", header)
		for _, r := range results {
			status := "Ready to cook"
			if !r.Makeable() {
				status = fmt.Sprintf("Missing %d (%s)", len(r.Missing), strings.Join(r.Missing, ", "))
			}
			fmt.Fprintf(s.out, " %d. %s [%d/%d] %s\n", idx, r.Recipe.Name, r.Matched, r.Required, status)
			idx++
		}
	}

	section("Ready to cook:", resp.Ready)
	section("Almost there:", resp.Almost)
	section("Need more shopping:", resp.Rest)

	for _, r := range resp.Ready {
		fmt.Fprintf(s.out, "\nHow to make %s:\n%s\n", r.Recipe.Name, r.Recipe.Instructions)
	}
}

// chooseRecipes prompts for comma-separated numbers against the printed
// list. Blank selects everything listed; invalid entries re-prompt.
func (s *Session) chooseRecipes(resp *app.SuggestResponse) ([]match.Result, bool) {
	for {
		line, ok := s.readLine("\nEnter the numbers of the recipes you want to cook (comma separated), or press Enter for all listed: ")
		if !ok {
			return nil, false
		}
		if line == "" {
			return resp.Results, true
		}

		selected, err := pickByNumber(resp.Results, line)
		if err != nil {
			fmt.Fprintf(s.out, "%v, try again.\n", err)
			continue
		}
		return selected, true
	}
}

func pickByNumber(listed []match.Result, line string) ([]match.Result, error) {
	seen := make(map[string]struct{})
	var selected []match.Result

	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid input %q", part)
		}
		if idx < 1 || idx > len(listed) {
			return nil, fmt.Errorf("invalid recipe number %d", idx)
		}
		r := listed[idx-1]
		if _, ok := seen[r.Recipe.Name]; ok {
			continue
		}
		seen[r.Recipe.Name] = struct{}{}
		selected = append(selected, r)
	}

	if len(selected) == 0 {
		return listed, nil
	}
	return selected, nil
}

func (s *Session) printShoppingList(selected []match.Result) {
	items := shopping.Build(selected)

	fmt.Fprintln(s.out, "\nShopping list:")
	if len(items) == 0 {
		fmt.Fprintln(s.out, "You have everything you need!")
		return
	}
	for _, item := range items {
		fmt.Fprintf(s.out, " - %s\n", item)
	}
}

func (s *Session) offerPlan(selected []match.Result) {
	answer, ok := s.readLine("\nWould you like a weekly meal plan from these recipes? (y/n): ")
	if !ok || !strings.HasPrefix(strings.ToLower(answer), "y") {
		fmt.Fprintln(s.out, "Meal plan skipped.")
		return
	}

	recipes := make([]catalog.Recipe, 0, len(selected))
	for _, r := range selected {
		recipes = append(recipes, r.Recipe)
	}

	PrintWeek(s.out, planner.PlanWeek(recipes))
}

// PrintWeek renders a plan table, one line per day.
func PrintWeek(out io.Writer, week planner.Week) {
	fmt.Fprintln(out, "\nYour meal plan for the week:")
	for _, dp := range week.Plan {
		if dp.Recipe != nil {
			fmt.Fprintf(out, " %s: %s\n", dp.Day, dp.Recipe.Name)
		} else {
			fmt.Fprintf(out, " %s: (rest day)\n", dp.Day)
		}
	}
}
