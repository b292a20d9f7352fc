package service

import (
	"context"
	"testing"

	"studyquiz/internal/domain"
	"studyquiz/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFeedbackService_SubmitFeedback(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	repo.On("SaveFeedback", mock.Anything, mock.AnythingOfType("*domain.Feedback")).Return(nil)

	resp, err := svc.SubmitFeedback(context.Background(), "user1", &dto.FeedbackRequest{
		BookID:     "eng-01",
		QuestionID: "E01-C00-01-002",
		Type:       "question_report",
		Categories: []string{"誤字"},
		Content:    "選択肢Bに誤字があります",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FeedbackStatusOpen, resp.Status)
	assert.Equal(t, []string{"誤字"}, resp.Categories)
	repo.AssertExpectations(t)
}

func TestFeedbackService_SubmitFeedback_Invalid(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	_, err := svc.SubmitFeedback(context.Background(), "", &dto.FeedbackRequest{})

	require.Error(t, err)
	repo.AssertNotCalled(t, "SaveFeedback", mock.Anything, mock.Anything)
}

func TestFeedbackService_ListFeedback(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	repo.On("GetFeedbackByStatus", mock.Anything, domain.FeedbackStatusOpen).Return([]*domain.Feedback{
		{ID: "fb1", Type: "question_report", Status: domain.FeedbackStatusOpen},
	}, nil)

	feedbacks, err := svc.ListFeedback(context.Background(), domain.FeedbackStatusOpen)

	require.NoError(t, err)
	require.Len(t, feedbacks, 1)
	assert.Equal(t, "fb1", feedbacks[0].ID)
}

func TestFeedbackService_ListFeedback_UnknownStatus(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	_, err := svc.ListFeedback(context.Background(), "bogus")

	require.Error(t, err)
	repo.AssertNotCalled(t, "GetFeedbackByStatus", mock.Anything, mock.Anything)
}

func TestFeedbackService_UpdateStatus(t *testing.T) {
	repo := new(MockFeedbackRepository)
	svc := NewFeedbackService(repo)

	repo.On("UpdateFeedbackStatus", mock.Anything, "fb1", domain.FeedbackStatusResolved).Return(nil)

	err := svc.UpdateStatus(context.Background(), "fb1", &dto.UpdateFeedbackStatusRequest{
		Status: domain.FeedbackStatusResolved,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)

	err = svc.UpdateStatus(context.Background(), "fb1", &dto.UpdateFeedbackStatusRequest{Status: "bogus"})
	require.Error(t, err)
}
