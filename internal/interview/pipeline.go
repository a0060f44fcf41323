package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/abhisek/interviewq/internal/llm"
	"github.com/abhisek/interviewq/internal/ratelimit"
)

// Stage names a point in the request lifecycle. Failures are logged with
// the stage they happened in.
type Stage string

const (
	StageReceived    Stage = "received"
	StageRateChecked Stage = "rate_checked"
	StageValidated   Stage = "validated"
	StagePrompted    Stage = "prompted"
	StageCompleted   Stage = "completed"
	StageParsed      Stage = "parsed"
	StageResponded   Stage = "responded"
)

// Result is the outcome of one request: questions on success, otherwise
// a classified error.
type Result struct {
	Status    int
	Questions []QuestionItem
	Err       *Error
}

// OK reports whether the request succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Body returns the JSON envelope for r: {"questions": [...]} on success,
// {"error": "..."} otherwise.
func (r Result) Body() any {
	if r.Err != nil {
		return struct {
			Error string `json:"error"`
		}{r.Err.Message()}
	}
	questions := r.Questions
	if questions == nil {
		questions = []QuestionItem{}
	}
	return struct {
		Questions []QuestionItem `json:"questions"`
	}{questions}
}

// Options configures a Controller.
type Options struct {
	// Limiter gates requests per client. Nil disables rate limiting.
	Limiter *ratelimit.Limiter

	Completer Completer

	// Strict checks every returned element against QuestionListSchema.
	Strict bool

	Logger *slog.Logger
}

// Controller runs the generation pipeline: rate check, validation, prompt,
// completion, parse. Stages run in order and the first failure ends the
// request. Nothing is retried.
type Controller struct {
	limiter   *ratelimit.Limiter
	completer Completer
	strict    bool
	logger    *slog.Logger
}

func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		limiter:   opts.Limiter,
		completer: opts.Completer,
		strict:    opts.Strict,
		logger:    logger,
	}
}

// HandleJSON decodes body after the rate check and runs the pipeline.
// Only a body that is not a JSON object fails with KindMalformedRequest;
// mistyped fields are left for validation.
func (c *Controller) HandleJSON(ctx context.Context, clientID string, body io.Reader) Result {
	if res, ok := c.admit(ctx, clientID); !ok {
		return res
	}

	var in requestBody
	if err := json.NewDecoder(body).Decode(&in); err != nil {
		return c.fail(clientID, StageReceived, KindMalformedRequest, err)
	}
	return c.run(ctx, clientID, in.request())
}

// Handle runs the pipeline for an already decoded request.
func (c *Controller) Handle(ctx context.Context, clientID string, req GenerationRequest) Result {
	if res, ok := c.admit(ctx, clientID); !ok {
		return res
	}
	return c.run(ctx, clientID, req)
}

func (c *Controller) admit(ctx context.Context, clientID string) (Result, bool) {
	if c.limiter == nil || c.limiter.Admit(ctx, clientID) {
		return Result{}, true
	}
	return c.fail(clientID, StageReceived, KindRateLimited, errors.New("client exceeded request quota")), false
}

func (c *Controller) run(ctx context.Context, clientID string, req GenerationRequest) Result {
	valid, err := Validate(req)
	if err != nil {
		return c.fail(clientID, StageRateChecked, KindInvalidInput, err)
	}

	if !c.configured() {
		return c.fail(clientID, StageValidated, KindMisconfigured, llm.ErrNotConfigured)
	}

	prompt := BuildPrompt(valid)

	text, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		kind := KindUpstreamError
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			kind = KindMisconfigured
		// Only completion failures are checked for a 429; parse errors
		// never count as upstream rate limiting.
		case IsUpstreamRateLimited(err):
			kind = KindUpstreamRateLimited
		}
		return c.fail(clientID, StagePrompted, kind, err)
	}

	parse := ParseQuestions
	if c.strict {
		parse = ParseQuestionsStrict
	}
	questions, err := parse(text)
	if err != nil {
		return c.fail(clientID, StageCompleted, KindMalformedUpstreamOutput, err)
	}

	c.logger.Info("questions generated",
		"stage", StageResponded,
		"client", clientID,
		"role", valid.Role,
		"level", valid.Level,
		"requested", valid.Count,
		"returned", len(questions),
	)
	return Result{Status: http.StatusOK, Questions: questions}
}

// configured asks the completer whether its credentials are present, when
// it can tell.
func (c *Controller) configured() bool {
	if cc, ok := c.completer.(interface{ Configured() bool }); ok {
		return cc.Configured()
	}
	return true
}

// fail logs err against the stage the request last reached and converts it
// to a Result.
func (c *Controller) fail(clientID string, reached Stage, kind Kind, err error) Result {
	e := &Error{Kind: kind, Err: err}
	c.logger.Warn("generate failed",
		"stage", reached,
		"kind", kind.String(),
		"client", clientID,
		"error", err.Error(),
	)
	return Result{Status: kind.Status(), Err: e}
}

// String renders a one-line summary, mainly for logs and the CLI.
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%d %s", r.Status, r.Err.Message())
	}
	return fmt.Sprintf("%d %d questions", r.Status, len(r.Questions))
}
