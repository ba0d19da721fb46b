package auth

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/marmos91/pamcognito/internal/logger"
	"github.com/marmos91/pamcognito/pkg/auth/credential"
	"github.com/marmos91/pamcognito/pkg/config"
	"github.com/marmos91/pamcognito/pkg/conversation"
)

// Flags are the host flags relevant to an attempt.
type Flags uint

const (
	// FlagSilent forbids informational messages to the user.
	FlagSilent Flags = 1 << iota
)

// MaxChallengeRounds bounds the number of challenges answered in one
// attempt.
const MaxChallengeRounds = 3

// Bridge runs one authentication attempt end to end.
//
// Thread safety: a Bridge has no mutable fields and is safe for concurrent
// use; each call owns its configuration, credentials and outcome.
type Bridge struct {
	verifier Verifier
}

// NewBridge creates a Bridge that verifies credentials with v.
func NewBridge(v Verifier) *Bridge {
	return &Bridge{verifier: v}
}

// Authenticate performs one attempt for the transaction tx configured by
// the module arguments args:
//
//  1. load configuration; on error return StatusGenericError without
//     contacting the provider
//  2. acquire the credential pair; on error return StatusAuthErr
//  3. qualify the username with the configured domain
//  4. verify under the configured timeout, answering code challenges
//     when the challenge option is set
//  5. map the outcome to a Status
//
// The secret is wiped before Authenticate returns on every path, panics
// included. Authenticate never panics.
func (b *Bridge) Authenticate(ctx context.Context, tx conversation.Transaction, flags Flags, args []string) (status Status) {
	lc := logger.NewLogContext(uuid.NewString())
	if h, ok := tx.(conversation.Host); ok {
		lc = lc.WithService(h.Service(), h.RemoteHost())
	}
	ctx = logger.WithContext(ctx, lc)

	var pair *credential.Pair
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorCtx(ctx, "recovered panic during authentication",
				logger.Err(fmt.Errorf("%w: %v", ErrPanic, r)),
				logger.KeyPanic, fmt.Sprint(r),
				"stack", string(debug.Stack()))
			status = StatusGenericError
		}
		pair.Wipe()
	}()

	cfg, err := config.Load(args)
	if err != nil {
		var cerr *config.ConfigError
		if errors.As(err, &cerr) {
			logger.WarnCtx(ctx, "invalid module configuration", logger.Option(cerr.Option), logger.Err(err))
		} else {
			logger.WarnCtx(ctx, "invalid module configuration", logger.Err(err))
		}
		return StatusGenericError
	}

	pair, err = conversation.Acquire(tx, conversation.Options{
		Prompt:       cfg.Prompt,
		UseFirstPass: cfg.UseFirstPass,
	})
	if err != nil {
		logger.InfoCtx(ctx, "credentials not acquired", logger.Err(err), logger.Status(StatusAuthErr.String()))
		return StatusAuthErr
	}

	lc = lc.WithUser(pair.Username)
	ctx = logger.WithContext(ctx, lc)
	pair.Username = cfg.Qualify(pair.Username)

	vctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	outcome, err := b.verify(vctx, tx, flags, cfg, pair)
	if err != nil {
		status = StatusServiceUnavailable
		logger.WarnCtx(ctx, "identity provider unavailable",
			logger.Err(err),
			logger.Status(status.String()),
			logger.DurationMs(lc.DurationMs()))
		return status
	}

	status = StatusOf(outcome)
	b.logOutcome(ctx, lc, outcome, status)
	return status
}

// verify runs Verify and the challenge rounds that follow it. A verifier
// that returns neither an outcome nor an error yields ErrNoOutcome.
func (b *Bridge) verify(ctx context.Context, tx conversation.Transaction, flags Flags, cfg *config.Config, pair *credential.Pair) (*Outcome, error) {
	out, err := b.verifier.Verify(ctx, &Request{Config: cfg, Credentials: pair})
	if err = deadline(ctx, err); err != nil {
		return nil, fmt.Errorf("%s: verify: %w", b.verifier.Name(), err)
	}
	if out == nil {
		return nil, fmt.Errorf("%s: verify: %w", b.verifier.Name(), ErrNoOutcome)
	}

	for round := 1; out.Kind == OutcomeChallengeRequired; round++ {
		ch := out.Challenge
		if round > MaxChallengeRounds || !cfg.Challenge || !ch.Answerable() {
			b.leaveUnanswered(ctx, tx, flags, ch)
			break
		}

		logger.DebugCtx(ctx, "answering challenge", logger.Challenge(ch.Name), logger.Round(round))
		answer, err := conversation.Answer(tx, ch.Prompt(), false)
		if err != nil {
			logger.InfoCtx(ctx, "challenge answer not acquired", logger.Challenge(ch.Name), logger.Err(err))
			return Rejected(OutcomeInvalidCredentials), nil
		}

		if out, err = b.respond(ctx, cfg, pair.Username, ch, answer); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// respond submits one challenge answer. The answer is wiped on return,
// including when the verifier panics.
func (b *Bridge) respond(ctx context.Context, cfg *config.Config, username string, ch *Challenge, answer *credential.Secret) (*Outcome, error) {
	defer answer.Wipe()

	out, err := b.verifier.Respond(ctx, &ChallengeRequest{
		Config:    cfg,
		Username:  username,
		Challenge: *ch,
		Answer:    answer,
	})
	if err = deadline(ctx, err); err != nil {
		return nil, fmt.Errorf("%s: respond to %s: %w", b.verifier.Name(), ch.Name, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%s: respond to %s: %w", b.verifier.Name(), ch.Name, ErrNoOutcome)
	}
	return out, nil
}

// deadline turns an answer that arrived after the deadline into an error.
func deadline(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	return ctx.Err()
}

// leaveUnanswered tells the user why a challenge ends the attempt.
func (b *Bridge) leaveUnanswered(ctx context.Context, tx conversation.Transaction, flags Flags, ch *Challenge) {
	name := ""
	if ch != nil {
		name = ch.Name
	}
	logger.InfoCtx(ctx, "challenge left unanswered", logger.Challenge(name))

	if flags&FlagSilent != 0 || ch == nil {
		return
	}
	msg := "Additional verification is required and cannot be completed here."
	if ch.Name == ChallengeNewPassword {
		msg = "Your password must be changed before you can log in."
	}
	if err := conversation.Notify(tx, conversation.ErrorMsg, msg); err != nil {
		logger.DebugCtx(ctx, "notify failed", logger.Err(err))
	}
}

func (b *Bridge) logOutcome(ctx context.Context, lc *logger.LogContext, out *Outcome, status Status) {
	kind := "none"
	if out != nil {
		kind = out.Kind.String()
	}
	args := []any{
		logger.Outcome(kind),
		logger.Status(status.String()),
		logger.DurationMs(lc.DurationMs()),
	}

	if status == StatusSuccess {
		logger.InfoCtx(ctx, "authentication succeeded", append(args, logger.Principal(out.Principal))...)
		return
	}
	logger.WarnCtx(ctx, "authentication failed", args...)
}
