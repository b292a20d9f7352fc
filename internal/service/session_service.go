package service

import (
	"context"
	"math/rand"
	"sync"

	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"
	"studyquiz/internal/util"

	"go.uber.org/zap"
)

// SessionService drives the test session lifecycle: sampling a question set,
// shuffling options, grading answers, and producing the final report.
type SessionService interface {
	StartSession(ctx context.Context, userID string, req *dto.StartSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, req *dto.SubmitAnswerRequest) (*dto.AnswerFeedbackResponse, error)
	Advance(ctx context.Context, sessionID string) (*dto.AdvanceResponse, error)
	ToggleFlag(ctx context.Context, sessionID string, req *dto.ToggleFlagRequest) (*dto.ToggleFlagResponse, error)
	Finalize(ctx context.Context, sessionID string) (*dto.ScoreReportResponse, error)
	GetReport(ctx context.Context, sessionID string) (*dto.ScoreReportResponse, error)
	GetUserResults(ctx context.Context, userID string) ([]*dto.TestResultResponse, error)
}

type sessionServiceImpl struct {
	questionRepo domain.QuestionRepository
	resultRepo   domain.ResultRepository
	txManager    domain.TransactionManager
	store        SessionStore

	// rng is injectable so sampling and shuffling are reproducible under a
	// seeded source. rand.Rand is not goroutine safe.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	questionRepo domain.QuestionRepository,
	resultRepo domain.ResultRepository,
	txManager domain.TransactionManager,
	store SessionStore,
	rng *rand.Rand,
) SessionService {
	return &sessionServiceImpl{
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		txManager:    txManager,
		store:        store,
		rng:          rng,
	}
}

// StartSession samples a question set from the chapter pool, shuffles each
// question's options, and stores the new session in InProgress.
func (s *sessionServiceImpl) StartSession(ctx context.Context, userID string, req *dto.StartSessionRequest) (*dto.SessionResponse, error) {
	pool, err := s.questionRepo.GetQuestionsByChapter(ctx, req.ChapterID)
	if err != nil {
		logger.Get().Error("Failed to load chapter question pool", zap.Error(err), zap.String("chapterID", req.ChapterID))
		return nil, domain.NewInternalError("failed to load questions", err)
	}

	s.rngMu.Lock()
	sampled, err := domain.SampleSessionSet(pool, req.SetID, s.rng)
	if err != nil {
		s.rngMu.Unlock()
		return nil, err
	}

	questions := make([]*domain.SessionQuestion, 0, len(sampled))
	for _, q := range sampled {
		sq, err := domain.ShuffleOptions(q, s.rng)
		if err != nil {
			s.rngMu.Unlock()
			logger.Get().Error("Malformed question rejected at session start",
				zap.Error(err), zap.String("questionID", q.QuestionID))
			return nil, err
		}
		questions = append(questions, sq)
	}
	s.rngMu.Unlock()

	setID := req.SetID
	if setID == "" && len(sampled) > 0 {
		setID = sampled[0].EffectiveSetID()
	}

	session := domain.NewTestSession(util.NewULID(), userID, req.BookID, req.ChapterID, setID)
	if err := session.Start(questions); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	logger.Get().Info("Test session started",
		zap.String("sessionID", session.ID),
		zap.String("chapterID", session.ChapterID),
		zap.String("setID", session.SetID),
		zap.Int("questionCount", len(questions)))
	return toSessionResponse(session), nil
}

func (s *sessionServiceImpl) GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// SubmitAnswer grades one answer against the session's shuffled options.
// First answer wins; repeats report the recorded outcome unchanged.
func (s *sessionServiceImpl) SubmitAnswer(ctx context.Context, sessionID string, req *dto.SubmitAnswerRequest) (*dto.AnswerFeedbackResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	feedback, err := session.Answer(req.QuestionID, req.Answer)
	if err != nil {
		return nil, err
	}
	if !feedback.AlreadyAnswered {
		if err := s.store.Save(ctx, session); err != nil {
			return nil, err
		}
	}

	return &dto.AnswerFeedbackResponse{
		IsCorrect:       feedback.IsCorrect,
		AlreadyAnswered: feedback.AlreadyAnswered,
		CorrectText:     feedback.CorrectText,
		Explanation:     feedback.Explanation,
	}, nil
}

// Advance moves to the next question; advancing past the last question
// completes the session and persists the result for registered users.
func (s *sessionServiceImpl) Advance(ctx context.Context, sessionID string) (*dto.AdvanceResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next, completed, err := session.Advance()
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	resp := &dto.AdvanceResponse{
		CurrentIndex: session.CurrentIndex,
		Completed:    completed,
		State:        string(session.State),
	}
	if completed {
		s.persistResult(ctx, session)
		resp.Report = toScoreReportResponse(session.Result)
	} else {
		resp.Question = toSessionQuestionResponse(session, next)
	}
	return resp, nil
}

func (s *sessionServiceImpl) ToggleFlag(ctx context.Context, sessionID string, req *dto.ToggleFlagRequest) (*dto.ToggleFlagResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	flagged, err := session.ToggleFlag(req.QuestionID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	return &dto.ToggleFlagResponse{QuestionID: req.QuestionID, Flagged: flagged}, nil
}

// Finalize force-completes the session and returns the report. Safe to call
// repeatedly; a completed session returns its existing report.
func (s *sessionServiceImpl) Finalize(ctx context.Context, sessionID string) (*dto.ScoreReportResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	wasCompleted := session.State == domain.SessionCompleted
	report, err := session.Finalize()
	if err != nil {
		return nil, err
	}
	if !wasCompleted {
		if err := s.store.Save(ctx, session); err != nil {
			return nil, err
		}
		s.persistResult(ctx, session)
	}

	return toScoreReportResponse(report), nil
}

func (s *sessionServiceImpl) GetReport(ctx context.Context, sessionID string) (*dto.ScoreReportResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	report, err := session.Report()
	if err != nil {
		return nil, err
	}
	return toScoreReportResponse(report), nil
}

func (s *sessionServiceImpl) GetUserResults(ctx context.Context, userID string) ([]*dto.TestResultResponse, error) {
	results, err := s.resultRepo.GetResultsByUser(ctx, userID)
	if err != nil {
		logger.Get().Error("Failed to load user results", zap.Error(err), zap.String("userID", userID))
		return nil, domain.NewInternalError("failed to load results", err)
	}

	responses := make([]*dto.TestResultResponse, 0, len(results))
	for _, r := range results {
		responses = append(responses, &dto.TestResultResponse{
			SessionID:   r.SessionID,
			BookID:      r.BookID,
			ChapterID:   r.ChapterID,
			SetID:       r.SetID,
			Score:       r.Score,
			Total:       r.Total,
			Percentage:  r.Percentage,
			CompletedAt: r.CompletedAt,
		})
	}
	return responses, nil
}

// persistResult stores the completed score for registered users. Anonymous
// sessions are graded but never persisted. Persistence failure does not fail
// the request; the report is already in the session store.
func (s *sessionServiceImpl) persistResult(ctx context.Context, session *domain.TestSession) {
	if session.UserID == "" || session.Result == nil {
		return
	}

	result := &domain.TestResult{
		SessionID:   session.ID,
		UserID:      session.UserID,
		BookID:      session.BookID,
		ChapterID:   session.ChapterID,
		SetID:       session.SetID,
		Score:       session.Result.CorrectCount,
		Total:       session.Result.Total,
		Percentage:  session.Result.Percentage,
		CompletedAt: session.Result.CompletedAt,
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.resultRepo.SaveResult(txCtx, result)
	})
	if err != nil {
		logger.Get().Error("Failed to persist test result",
			zap.Error(err),
			zap.String("sessionID", session.ID),
			zap.String("userID", session.UserID))
	}
}

func toSessionQuestionResponse(session *domain.TestSession, sq *domain.SessionQuestion) *dto.SessionQuestionResponse {
	userAnswer, answered := session.Answers[sq.Question.QuestionID]
	return &dto.SessionQuestionResponse{
		QuestionID:   sq.Question.QuestionID,
		QuestionText: sq.Question.QuestionText,
		Options:      sq.ShuffledOptions,
		Flagged:      session.Flagged[sq.Question.QuestionID],
		Answered:     answered,
		UserAnswer:   userAnswer,
	}
}

func toSessionResponse(session *domain.TestSession) *dto.SessionResponse {
	questions := make([]*dto.SessionQuestionResponse, 0, len(session.Questions))
	for _, sq := range session.Questions {
		questions = append(questions, toSessionQuestionResponse(session, sq))
	}
	return &dto.SessionResponse{
		SessionID:    session.ID,
		BookID:       session.BookID,
		ChapterID:    session.ChapterID,
		SetID:        session.SetID,
		State:        string(session.State),
		CurrentIndex: session.CurrentIndex,
		Questions:    questions,
		StartedAt:    session.StartedAt,
	}
}

func toScoreReportResponse(report *domain.ScoreReport) *dto.ScoreReportResponse {
	breakdown := make([]*dto.ReportEntryResponse, 0, len(report.Breakdown))
	for _, entry := range report.Breakdown {
		refs := make([]string, 0, len(entry.PageRefs))
		for _, ref := range entry.PageRefs {
			refs = append(refs, ref.String())
		}
		breakdown = append(breakdown, &dto.ReportEntryResponse{
			QuestionID:   entry.QuestionID,
			QuestionText: entry.QuestionText,
			UserAnswer:   entry.UserAnswer,
			Outcome:      string(entry.Outcome),
			CorrectText:  entry.CorrectText,
			Explanation:  entry.Explanation,
			PageRefs:     refs,
		})
	}
	return &dto.ScoreReportResponse{
		SessionID:    report.SessionID,
		CorrectCount: report.CorrectCount,
		Total:        report.Total,
		Percentage:   report.Percentage,
		Breakdown:    breakdown,
		CompletedAt:  report.CompletedAt,
	}
}
