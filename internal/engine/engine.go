package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mockmate/interview/internal/corpus"
	"mockmate/interview/internal/gateway"
	"mockmate/interview/internal/intent"
	"mockmate/interview/internal/models"
	"mockmate/interview/internal/prompts"
	"mockmate/interview/internal/storage"
)

var (
	// ErrSessionDone rejects messages sent to a finished session.
	ErrSessionDone = errors.New("session is done")
	// ErrSessionNotStarted rejects messages sent before the opening turn.
	ErrSessionNotStarted = errors.New("session has not been started")
	// ErrNotReady rejects finalize before the wrapup stage. Fatal for the
	// call, never retried, session state unchanged.
	ErrNotReady = errors.New("session is not ready to be finalized")
)

// Deterministic phrasing used when no provider call is needed (or possible).
const (
	reciprocalAck     = "I'm doing well, thank you for asking!"
	continuationAck   = "You're right, thanks for the reminder."
	clarificationLead = "Of course, here's the question again:"
	followupLead      = "Good. A quick follow-up on that:"
	noActiveQuestion  = "There's no active question right now. Whenever you're ready, we can continue."
	wrapupHolding     = "We've covered all the questions. You can request your evaluation whenever you're ready."

	openingFallback = "Hi! I'm your interviewer for today's session. Before we dive in, how are you doing?"
	warmupFallback  = "Great, thanks for sharing. Let's get into the interview questions."
	transitionLead  = "Thanks, noted. Let's move on to the next question."
	wrapupFallback  = "That was the last question. Thank you for your time today! You can now request your evaluation."
	redirectLead    = "No worries, but let's stay with the interview. Back to the current question:"
)

// Completer is the slice of the gateway the engine depends on.
type Completer interface {
	Complete(ctx context.Context, prompt string) (gateway.Result, error)
}

// Scorer produces the final evaluation; implemented by internal/scoring.
type Scorer interface {
	Score(ctx context.Context, session *models.Session, force bool) (*models.Evaluation, error)
}

// Engine is the conversation state machine: it owns stage transitions,
// consults the intent classifier and question index, and drives message
// generation through the gateway. Per-session turns are serialized by a
// keyed lock; different sessions proceed in parallel.
type Engine struct {
	store      storage.Store
	index      *corpus.Index
	gw         Completer
	classifier intent.Classifier
	prompts    prompts.PromptProvider
	scorer     Scorer
	logger     *zap.Logger
	locks      *sessionLocks
	policy     BehavioralPolicy
}

func New(
	store storage.Store,
	index *corpus.Index,
	gw Completer,
	classifier intent.Classifier,
	pm prompts.PromptProvider,
	scorer Scorer,
	policy BehavioralPolicy,
	logger *zap.Logger,
) *Engine {
	if !policy.Valid() {
		policy = PolicyFrontLoaded
	}
	return &Engine{
		store:      store,
		index:      index,
		gw:         gw,
		classifier: classifier,
		prompts:    pm,
		scorer:     scorer,
		logger:     logger,
		locks:      newSessionLocks(),
		policy:     policy,
	}
}

// StartSession creates the session, emits the opening small-talk prompt,
// and advances INTRO to WARMUP.
func (e *Engine) StartSession(ctx context.Context, req *models.StartSessionRequest) (*models.Session, *models.Message, error) {
	session := &models.Session{
		ID:               uuid.New().String(),
		UserID:           req.UserID,
		Track:            models.Track(req.Track),
		CompanyStyle:     models.CompanyStyle(req.CompanyStyle),
		Difficulty:       models.Difficulty(req.Difficulty),
		Stage:            models.StageIntro,
		MaxQuestions:     req.MaxQuestions,
		BehavioralTarget: req.BehavioralTarget,
	}
	if err := e.store.CreateSession(ctx, session); err != nil {
		return nil, nil, err
	}

	opening, err := e.generateLead(ctx, session, "opening", nil, openingFallback)
	if err != nil {
		return nil, nil, err
	}

	e.setStage(session, models.StageWarmup)
	msg := e.newMessage(session, models.RoleInterviewer, opening)
	if err := e.store.SaveTurn(ctx, session, msg); err != nil {
		return nil, nil, err
	}

	e.logger.Info("session started",
		zap.String("session_id", session.ID),
		zap.String("track", string(session.Track)),
		zap.String("company_style", string(session.CompanyStyle)))
	return session, msg, nil
}

// HandleUserMessage runs one turn: classify the student's message, branch on
// intent, and produce the next interviewer message. The turn's messages and
// the session row are persisted atomically at the end, so a provider
// fallback mid-turn still advances the session.
func (e *Engine) HandleUserMessage(ctx context.Context, sessionID, text string) (*models.Session, *models.Message, string, error) {
	// a client disconnect must not roll back a turn that already consumed
	// provider work; once started, the turn completes and persists
	ctx = context.WithoutCancel(ctx)

	release := e.locks.acquire(sessionID)
	defer release()

	session, err := e.store.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, "", err
	}
	switch session.Stage {
	case models.StageDone:
		return nil, nil, "", ErrSessionDone
	case models.StageIntro:
		return nil, nil, "", ErrSessionNotStarted
	}

	student := e.newMessage(session, models.RoleStudent, text)

	res, err := e.classifier.Classify(ctx, session.Stage, text)
	if err != nil {
		e.logger.Warn("intent classification failed, treating as substantive answer",
			zap.String("session_id", sessionID), zap.Error(err))
		res = intent.Result{Intent: models.IntentSubstantiveAnswer}
	}
	e.logger.Info("turn classified",
		zap.String("session_id", sessionID),
		zap.String("intent", string(res.Intent)),
		zap.Float64("confidence", res.Confidence),
		zap.String("tier", res.Tier))

	var reply, warning string
	switch res.Intent {
	case models.IntentClarification:
		reply = e.replayQuestion(ctx, session)
	case models.IntentOffTopic:
		reply, err = e.redirect(ctx, session)
	case models.IntentReciprocalQuestion:
		var cont string
		cont, warning, err = e.advance(ctx, session, text)
		reply = reciprocalAck + "\n\n" + cont
	case models.IntentContinuation:
		var cont string
		cont, warning, err = e.advance(ctx, session, text)
		reply = continuationAck + "\n\n" + cont
	default:
		reply, warning, err = e.advance(ctx, session, text)
	}
	if err != nil {
		return nil, nil, "", err
	}

	interviewer := e.newMessage(session, models.RoleInterviewer, reply)
	if err := e.store.SaveTurn(ctx, session, student, interviewer); err != nil {
		return nil, nil, "", err
	}
	return session, interviewer, warning, nil
}

// Finalize produces the evaluation for a WRAPUP (or DONE) session and moves
// it to DONE. Duplicate calls return the existing evaluation; force replaces
// it.
func (e *Engine) Finalize(ctx context.Context, sessionID string, force bool) (*models.Evaluation, error) {
	// same at-least-once semantics as a message turn: a disconnect after
	// the scoring call started must not leave the session un-scored
	ctx = context.WithoutCancel(ctx)

	release := e.locks.acquire(sessionID)
	defer release()

	session, err := e.store.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage != models.StageWrapup && session.Stage != models.StageDone {
		return nil, ErrNotReady
	}

	eval, err := e.scorer.Score(ctx, session, force)
	if err != nil {
		return nil, err
	}

	if session.Stage != models.StageDone {
		e.setStage(session, models.StageDone)
		if err := e.store.SaveSession(ctx, session); err != nil {
			return nil, err
		}
	}
	return eval, nil
}

// Reset is the one permitted stage regression: back to WARMUP with cleared
// counters. The transcript stays; messages are append-only.
func (e *Engine) Reset(ctx context.Context, sessionID string) (*models.Session, error) {
	release := e.locks.acquire(sessionID)
	defer release()

	session, err := e.store.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Stage = models.StageWarmup
	session.CurrentQuestionID = nil
	session.QuestionsAsked = 0
	session.BehavioralAsked = 0
	session.FollowupAsked = false
	session.DifficultyAdjustedAt = 0
	session.LastAnswer = ""

	note := e.newMessage(session, models.RoleSystem, "Interview reset. Picking things back up from the warmup.")
	if err := e.store.SaveTurn(ctx, session, note); err != nil {
		return nil, err
	}
	e.logger.Info("session reset", zap.String("session_id", sessionID))
	return session, nil
}

// advance is the question-progress path: warmup handoff, followups, answer
// acceptance, difficulty adjustment, next-question selection, wrapup.
func (e *Engine) advance(ctx context.Context, session *models.Session, answer string) (string, string, error) {
	switch {
	case session.Stage == models.StageWrapup:
		return wrapupHolding, "", nil
	case session.Stage == models.StageWarmup:
		return e.leaveWarmup(ctx, session, answer)
	default:
		return e.questionLoop(ctx, session, answer)
	}
}

// leaveWarmup moves from small talk into the first question.
func (e *Engine) leaveWarmup(ctx context.Context, session *models.Session, answer string) (string, string, error) {
	lead, err := e.generateLead(ctx, session, "warmup_ack", map[string]string{"Answer": answer}, warmupFallback)
	if err != nil {
		return "", "", err
	}

	q, warning := e.pickNext(session, map[string]bool{})
	if q == nil {
		e.setStage(session, models.StageWrapup)
		return lead + "\n\n" + wrapupHolding, warning, nil
	}
	e.presentQuestion(session, q)
	return lead + "\n\n" + q.Prompt, warning, nil
}

// questionLoop handles an accepted answer inside the MAIN/BEHAVIORAL loop.
func (e *Engine) questionLoop(ctx context.Context, session *models.Session, answer string) (string, string, error) {
	msgs, err := e.store.ListMessages(ctx, session.ID)
	if err != nil {
		return "", "", err
	}

	current := e.currentQuestion(session)

	// one followup per question before moving on, not counted as a slot
	if current != nil && !session.FollowupAsked && len(current.Followups) > 0 {
		session.FollowupAsked = true
		return followupLead + "\n\n" + current.Followups[0], "", nil
	}

	if current != nil {
		session.QuestionsAsked++
	}

	if session.QuestionsAsked >= session.MaxQuestions {
		return e.wrapup(ctx, session)
	}

	// only accepted answers feed the signal window; clarifications and
	// off-topic turns never reach this path
	if current != nil {
		e.maybeAdjustDifficulty(session, difficultyWindow(session.LastAnswer, answer))
		session.LastAnswer = answer
	}

	q, warning := e.pickNext(session, askedQuestionIDs(msgs))
	if q == nil {
		wrap, _, err := e.wrapup(ctx, session)
		return wrap, warning, err
	}
	e.presentQuestion(session, q)

	lead, err := e.generateLead(ctx, session, "transition", map[string]string{"Answer": answer}, transitionLead)
	if err != nil {
		return "", "", err
	}
	return lead + "\n\n" + q.Prompt, warning, nil
}

func (e *Engine) wrapup(ctx context.Context, session *models.Session) (string, string, error) {
	e.setStage(session, models.StageWrapup)
	session.CurrentQuestionID = nil
	text, err := e.generateLead(ctx, session, "wrapup", map[string]string{
		"QuestionCount": fmt.Sprintf("%d", session.QuestionsAsked),
	}, wrapupFallback)
	return text, "", err
}

// pickNext selects the next question per the behavioral policy, reusing
// another difficulty tier when the requested one has no coverage. A nil
// question with a warning means the corpus is exhausted for this session.
func (e *Engine) pickNext(session *models.Session, excluded map[string]bool) (*models.Question, string) {
	if nextIsBehavioral(e.policy, session) {
		q, err := e.index.SelectBehavioral(session.CompanyStyle, session.Difficulty, excluded)
		if err == nil {
			return q, ""
		}
		// no behavioral coverage left: fill the slot from the technical pool
	}

	q, err := e.index.Select(session.Track, session.CompanyStyle, session.Difficulty, excluded)
	if err == nil {
		return q, ""
	}

	// coverage gap: reuse another tier rather than failing the turn
	for _, tier := range []models.Difficulty{session.Difficulty.Lower(), session.Difficulty.Raise()} {
		if tier == session.Difficulty {
			continue
		}
		if q, err := e.index.Select(session.Track, session.CompanyStyle, tier, excluded); err == nil {
			warning := fmt.Sprintf("no %s questions left for %s/%s; using a %s question instead",
				session.Difficulty, session.Track, session.CompanyStyle, tier)
			e.logger.Warn("difficulty tier coverage gap",
				zap.String("session_id", session.ID), zap.String("warning", warning))
			return q, warning
		}
	}

	warning := fmt.Sprintf("no questions left for %s/%s; wrapping up early",
		session.Track, session.CompanyStyle)
	e.logger.Warn("question corpus exhausted for session",
		zap.String("session_id", session.ID),
		zap.String("track", string(session.Track)),
		zap.String("company_style", string(session.CompanyStyle)))
	return nil, warning
}

// presentQuestion records the selected question on the session and moves
// the stage to match the question kind.
func (e *Engine) presentQuestion(session *models.Session, q *models.Question) {
	id := q.ID
	session.CurrentQuestionID = &id
	session.FollowupAsked = false

	var next models.Stage
	if q.IsBehavioral() {
		session.BehavioralAsked++
		if session.Stage == models.StageWarmup || session.Stage == models.StageWarmupBehavioral {
			next = models.StageWarmupBehavioral
		} else {
			next = models.StageBehavioral
		}
	} else {
		next = models.StageMain
	}
	e.setStage(session, next)
}

func (e *Engine) maybeAdjustDifficulty(session *models.Session, recent []string) {
	if session.QuestionsAsked-session.DifficultyAdjustedAt < 2 {
		return
	}
	next := adjustDifficulty(session.Difficulty, recent)
	if next == session.Difficulty {
		return
	}
	e.logger.Info("adaptive difficulty adjusted",
		zap.String("session_id", session.ID),
		zap.String("from", string(session.Difficulty)),
		zap.String("to", string(next)))
	session.Difficulty = next
	session.DifficultyAdjustedAt = session.QuestionsAsked
}

// replayQuestion re-presents the most recent interviewer question verbatim,
// found by scanning the transcript backward. Stage and counters do not move.
func (e *Engine) replayQuestion(ctx context.Context, session *models.Session) string {
	msgs, err := e.store.ListMessages(ctx, session.ID)
	if err == nil {
		for i := len(msgs) - 1; i >= 0; i-- {
			m := msgs[i]
			if m.Role != models.RoleInterviewer || m.CurrentQuestionID == nil {
				continue
			}
			if q, ok := e.index.ByID(*m.CurrentQuestionID); ok {
				return clarificationLead + "\n\n" + q.Prompt
			}
		}
	}
	if q := e.currentQuestion(session); q != nil {
		return clarificationLead + "\n\n" + q.Prompt
	}
	return noActiveQuestion
}

// redirect nudges an off-topic student back without penalizing progress.
func (e *Engine) redirect(ctx context.Context, session *models.Session) (string, error) {
	q := e.currentQuestion(session)
	if q == nil {
		return noActiveQuestion, nil
	}
	lead, err := e.generateLead(ctx, session, "redirect", map[string]string{"Question": q.Prompt}, redirectLead)
	if err != nil {
		return "", err
	}
	return lead + "\n\n" + q.Prompt, nil
}

// generateLead phrases a conversational beat through the gateway, falling
// back to deterministic text when the provider is degraded. The only error
// out of here is the caller's context cancellation.
func (e *Engine) generateLead(ctx context.Context, session *models.Session, variant string, extra map[string]string, fallback string) (string, error) {
	data := map[string]string{
		"Track":        string(session.Track),
		"CompanyStyle": string(session.CompanyStyle),
	}
	for k, v := range extra {
		data[k] = v
	}

	prompt, err := e.prompts.BuildPrompt("interviewer", variant, data)
	if err != nil {
		e.logger.Error("failed to build prompt",
			zap.String("variant", variant), zap.Error(err))
		return fallback, nil
	}

	result, err := e.gw.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	if result.IsFallback() {
		return fallback, nil
	}
	return result.Text, nil
}

func (e *Engine) setStage(session *models.Session, to models.Stage) {
	if !canTransition(session.Stage, to) {
		// transition table violation is a bug, not a user error
		e.logger.Error("illegal stage transition",
			zap.String("session_id", session.ID),
			zap.String("from", string(session.Stage)),
			zap.String("to", string(to)))
		return
	}
	session.Stage = to
}

func (e *Engine) currentQuestion(session *models.Session) *models.Question {
	if session.CurrentQuestionID == nil {
		return nil
	}
	q, ok := e.index.ByID(*session.CurrentQuestionID)
	if !ok {
		return nil
	}
	return q
}

func (e *Engine) newMessage(session *models.Session, role models.Role, content string) *models.Message {
	return &models.Message{
		ID:                uuid.New().String(),
		SessionID:         session.ID,
		Role:              role,
		Content:           content,
		CurrentQuestionID: cloneQuestionID(session.CurrentQuestionID),
		CreatedAt:         time.Now().UTC(),
	}
}

func cloneQuestionID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// askedQuestionIDs collects every question already presented in this session.
func askedQuestionIDs(msgs []models.Message) map[string]bool {
	asked := make(map[string]bool)
	for _, m := range msgs {
		if m.Role == models.RoleInterviewer && m.CurrentQuestionID != nil {
			asked[*m.CurrentQuestionID] = true
		}
	}
	return asked
}
