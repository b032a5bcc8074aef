package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/darkworlds/internal/client/models"
	"github.com/dmitrijs2005/darkworlds/internal/client/transcript"
	"github.com/dmitrijs2005/darkworlds/internal/common"
	"github.com/dmitrijs2005/darkworlds/internal/logging"
)

type UserStore interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	SetOnline(ctx context.Context, username string, online bool) error
}

type MessageStore interface {
	Send(ctx context.Context, sender, recipient, content string) error
	Inbox(ctx context.Context, recipient string) ([]models.DirectMessage, error)
}

type DiscussionStore interface {
	Post(ctx context.Context, sender, content string) error
}

// Refresher re-fetches the cached views after a command changed them.
type Refresher interface {
	RefreshOnlineUsers(ctx context.Context) error
	RefreshDiscussion(ctx context.Context) error
}

type SessionState interface {
	Current() (string, bool)
	Login(ctx context.Context, username string) error
	Logout(ctx context.Context) error
}

// Result is the outcome of one command. Cleared is set by clear, which
// empties the transcript instead of adding to it.
type Result struct {
	Output  string
	Cleared bool
}

type Deps struct {
	Users      UserStore
	Messages   MessageStore
	Discussion DiscussionStore
	Session    SessionState
	Sync       Refresher
	View       *ViewState
	Transcript *transcript.Transcript
	Logger     logging.Logger

	// RequestTimeout bounds every store call; zero means no bound.
	RequestTimeout time.Duration
}

type handlerFunc func(ctx context.Context, user string, args []string) (string, error)

type commandDef struct {
	requiresAuth bool
	authMessage  string
	minArgs      int
	usage        string
	clears       bool
	handle       handlerFunc
}

type Dispatcher struct {
	users      UserStore
	messages   MessageStore
	discussion DiscussionStore
	session    SessionState
	sync       Refresher
	view       *ViewState
	transcript *transcript.Transcript
	logger     logging.Logger
	timeout    time.Duration

	commands map[string]commandDef
}

func NewDispatcher(d Deps) *Dispatcher {
	if d.View == nil {
		d.View = &ViewState{}
	}
	if d.Transcript == nil {
		d.Transcript = transcript.New()
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}

	ds := &Dispatcher{
		users:      d.Users,
		messages:   d.Messages,
		discussion: d.Discussion,
		session:    d.Session,
		sync:       d.Sync,
		view:       d.View,
		transcript: d.Transcript,
		logger:     d.Logger,
		timeout:    d.RequestTimeout,
	}

	ds.commands = map[string]commandDef{
		"whoami":     {handle: ds.whoami},
		"clear":      {clears: true},
		"register":   {minArgs: 2, usage: UsageRegister, handle: ds.register},
		"login":      {minArgs: 2, usage: UsageLogin, handle: ds.login},
		"logout":     {requiresAuth: true, authMessage: MsgAuthLogout, handle: ds.logout},
		"inbox":      {requiresAuth: true, authMessage: MsgAuthInbox, handle: ds.inbox},
		"send":       {requiresAuth: true, authMessage: MsgAuthSend, minArgs: 2, usage: UsageSend, handle: ds.send},
		"discussion": {requiresAuth: true, authMessage: MsgAuthDiscussion, minArgs: 1, usage: UsageDiscussion, handle: ds.post},
		"show":       {handle: ds.toggle("show", true)},
		"hide":       {handle: ds.toggle("hide", false)},
		"help":       {handle: static(HelpText)},
		"about":      {handle: static(AboutText)},
	}
	return ds
}

func (d *Dispatcher) Transcript() *transcript.Transcript { return d.transcript }

func (d *Dispatcher) View() *ViewState { return d.view }

// Run parses and executes line, then records it in the transcript.
func (d *Dispatcher) Run(ctx context.Context, line string) Result {
	name, args := Parse(line)
	res := d.Execute(ctx, name, args)
	if !res.Cleared {
		d.transcript.Append(strings.TrimSpace(line), res.Output)
	}
	return res
}

// Execute runs a single command. It never fails; errors are rendered into
// the result text.
func (d *Dispatcher) Execute(ctx context.Context, name string, args []string) Result {
	cmd, ok := d.commands[name]
	if !ok {
		return Result{Output: render(&UsageError{Usage: MsgCommandNotFound})}
	}
	if cmd.clears {
		d.transcript.Clear()
		return Result{Cleared: true}
	}

	user, loggedIn := d.session.Current()
	if cmd.requiresAuth && !loggedIn {
		return Result{Output: render(&AuthRequiredError{Message: cmd.authMessage})}
	}
	if len(args) < cmd.minArgs {
		return Result{Output: render(&UsageError{Usage: cmd.usage})}
	}

	out, err := cmd.handle(ctx, user, args)
	if err != nil {
		d.logger.Debug(ctx, "command failed", "command", name, "err", err)
		return Result{Output: render(err)}
	}
	return Result{Output: out}
}

func (d *Dispatcher) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.timeout)
}

func static(text string) handlerFunc {
	return func(context.Context, string, []string) (string, error) { return text, nil }
}

func (d *Dispatcher) whoami(_ context.Context, user string, _ []string) (string, error) {
	if user == "" {
		return MsgNotLoggedIn, nil
	}
	return user, nil
}

func (d *Dispatcher) register(ctx context.Context, _ string, args []string) (string, error) {
	username, password := args[0], args[1]

	sctx, cancel := d.storeCtx(ctx)
	defer cancel()
	if err := d.users.Register(sctx, username, password); err != nil {
		return "", &StoreError{Err: err}
	}
	return fmt.Sprintf("User %s registered successfully", username), nil
}

func (d *Dispatcher) login(ctx context.Context, _ string, args []string) (string, error) {
	username, password := args[0], args[1]

	sctx, cancel := d.storeCtx(ctx)
	u, err := d.users.Authenticate(sctx, username, password)
	cancel()
	if err != nil || u == nil {
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			d.logger.Warn(ctx, "credential lookup failed", "user", username, "err", err)
		}
		return "", &CredentialError{Err: err}
	}

	if err := d.session.Login(ctx, username); err != nil {
		d.logger.Warn(ctx, "session not persisted", "user", username, "err", err)
	}
	d.markOnline(ctx, username, true)
	d.refreshOnlineUsers(ctx)

	return fmt.Sprintf("User %s logged in successfully", username), nil
}

func (d *Dispatcher) logout(ctx context.Context, user string, _ []string) (string, error) {
	d.markOnline(ctx, user, false)
	if err := d.session.Logout(ctx); err != nil {
		d.logger.Warn(ctx, "persisted session not cleared", "user", user, "err", err)
	}
	d.refreshOnlineUsers(ctx)
	return MsgLoggedOut, nil
}

func (d *Dispatcher) inbox(ctx context.Context, user string, _ []string) (string, error) {
	sctx, cancel := d.storeCtx(ctx)
	defer cancel()

	msgs, err := d.messages.Inbox(sctx, user)
	if err != nil {
		return "", &StoreError{Err: err}
	}
	if len(msgs) == 0 {
		return MsgNoMessages, nil
	}

	var b strings.Builder
	b.WriteString(MsgInboxHeader)
	for i, m := range msgs {
		fmt.Fprintf(&b, "\n%d. From %s: %s", i+1, m.Sender, m.Content)
	}
	return b.String(), nil
}

func (d *Dispatcher) send(ctx context.Context, user string, args []string) (string, error) {
	recipient := args[0]
	content := strings.Join(args[1:], " ")

	sctx, cancel := d.storeCtx(ctx)
	defer cancel()
	if err := d.messages.Send(sctx, user, recipient, content); err != nil {
		return "", &StoreError{Err: err}
	}
	return fmt.Sprintf("Message sent to %s", recipient), nil
}

func (d *Dispatcher) post(ctx context.Context, user string, args []string) (string, error) {
	content := strings.Join(args, " ")

	sctx, cancel := d.storeCtx(ctx)
	err := d.discussion.Post(sctx, user, content)
	cancel()
	if err != nil {
		return "", &StoreError{Err: err}
	}

	if d.sync != nil {
		sctx, cancel := d.storeCtx(ctx)
		defer cancel()
		if err := d.sync.RefreshDiscussion(sctx); err != nil {
			d.logger.Warn(ctx, "discussion refresh failed", "err", err)
		}
	}
	return MsgDiscussionPosted, nil
}

func (d *Dispatcher) toggle(name string, visible bool) handlerFunc {
	return func(_ context.Context, _ string, args []string) (string, error) {
		var target string
		if len(args) > 0 {
			target = args[0]
		}
		if !d.view.Set(target, visible) {
			return "", &UnrecognizedSubcommandError{Command: name, Target: target}
		}
		return "", nil
	}
}

// markOnline flips the online flag. The command outcome does not depend on it.
func (d *Dispatcher) markOnline(ctx context.Context, user string, online bool) {
	sctx, cancel := d.storeCtx(ctx)
	defer cancel()
	if err := d.users.SetOnline(sctx, user, online); err != nil {
		d.logger.Warn(ctx, "online status not updated", "user", user, "online", online, "err", err)
	}
}

func (d *Dispatcher) refreshOnlineUsers(ctx context.Context) {
	if d.sync == nil {
		return
	}
	sctx, cancel := d.storeCtx(ctx)
	defer cancel()
	if err := d.sync.RefreshOnlineUsers(sctx); err != nil {
		d.logger.Warn(ctx, "online users refresh failed", "err", err)
	}
}
