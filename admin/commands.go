// Package admin implements the privileged moderator command surface. It is
// transport-agnostic: the command channel (chat bot, webhook) hands commands
// to the Dispatcher as plain text and relays the reply back to the caller.
package admin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Bota-ApexV2/n-updater/blog/application"
	"github.com/Bota-ApexV2/n-updater/blog/domain"
	"github.com/rs/zerolog/log"
)

// ErrUnauthorized is returned when the caller fails the injected
// authorization check.
var ErrUnauthorized = errors.New("caller is not authorized")

// Authorizer decides whether a caller may issue admin commands. It is
// supplied by the command-transport collaborator.
type Authorizer func(caller string) bool

// Dispatcher parses and executes moderator commands against the cache
// subsystem. Rejections (unknown slug, bad arguments) are replies, not
// errors; only an unauthorized caller surfaces as an error.
type Dispatcher struct {
	scheduler *application.Scheduler
	store     *application.Store
	toggles   *application.Toggles
	authorize Authorizer
}

// NewDispatcher wires the command surface to the scheduler, store, and
// toggle set it operates on.
func NewDispatcher(scheduler *application.Scheduler, store *application.Store, toggles *application.Toggles, authorize Authorizer) *Dispatcher {
	return &Dispatcher{
		scheduler: scheduler,
		store:     store,
		toggles:   toggles,
		authorize: authorize,
	}
}

// Dispatch executes one command line on behalf of caller and returns the
// reply to relay back. Returns ErrUnauthorized when the caller fails the
// authorization check; every other outcome is expressed in the reply.
func (d *Dispatcher) Dispatch(caller string, line string) (string, error) {
	if !d.authorize(caller) {
		return "", ErrUnauthorized
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "No command given.", nil
	}
	name, args := fields[0], fields[1:]

	log.Info().Str("caller", caller).Str("command", name).Msg("Admin command dispatched")

	switch name {
	case "refresh":
		return d.handleRefresh(args)
	case "enable-api":
		d.toggles.SetAPI(true)
		return "API enabled.", nil
	case "disable-api":
		d.toggles.SetAPI(false)
		return "API disabled.", nil
	case "enable-ran":
		d.toggles.SetRanPage(true)
		return "Ran page enabled.", nil
	case "disable-ran":
		d.toggles.SetRanPage(false)
		return "Ran page disabled.", nil
	case "enable-ran-slug":
		d.toggles.SetRanSlug(true)
		return "Ran slug page enabled.", nil
	case "disable-ran-slug":
		d.toggles.SetRanSlug(false)
		return "Ran slug page disabled.", nil
	case "control-posts":
		return d.handleControlPosts(args)
	default:
		return fmt.Sprintf("Unknown command %q.", name), nil
	}
}

// handleRefresh triggers an immediate refresh, or with an argument
// reconfigures the scheduler period in milliseconds.
func (d *Dispatcher) handleRefresh(args []string) (string, error) {
	if len(args) == 0 {
		if !d.scheduler.TriggerRefresh() {
			return "A refresh is already in progress.", nil
		}
		return "Posts refreshed.", nil
	}

	ms, err := strconv.Atoi(args[0])
	if err != nil || ms <= 0 {
		return fmt.Sprintf("Invalid interval %q: expected a positive number of milliseconds.", args[0]), nil
	}

	interval := time.Duration(ms) * time.Millisecond
	d.scheduler.Reconfigure(interval)

	return fmt.Sprintf("Refresh interval set to %s.", interval), nil
}

// handleControlPosts applies a per-post moderation action. Arguments are
// key=value pairs: action=<show|hide|keep> slug=<s>.
func (d *Dispatcher) handleControlPosts(args []string) (string, error) {
	var action, slug string
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Sprintf("Invalid argument %q: expected key=value.", arg), nil
		}
		switch key {
		case "action":
			action = value
		case "slug":
			slug = value
		}
	}
	if action == "" || slug == "" {
		return "Usage: control-posts action=<show|hide|keep> slug=<slug>", nil
	}

	var err error
	switch action {
	case "show":
		err = d.store.SetVisibility(slug, true)
	case "hide":
		err = d.store.SetVisibility(slug, false)
	case "keep":
		err = d.store.SetPinned(slug)
	default:
		return fmt.Sprintf("Unknown action %q: expected show, hide, or keep.", action), nil
	}

	if errors.Is(err, domain.ErrPostNotFound) {
		return fmt.Sprintf("No post found for slug %q.", slug), nil
	}
	if err != nil {
		return "", fmt.Errorf("control-posts %s %s: %w", action, slug, err)
	}

	return fmt.Sprintf("Post %q updated: %s.", slug, action), nil
}
