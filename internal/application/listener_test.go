package application

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports/mocks"
)

func TestListenerReplaceDropsPreviousCallback(t *testing.T) {
	connector := mocks.NewMockWalletConnector(t)
	connector.EXPECT().Acquire(mock.Anything).Return(testCredential, nil).Once()
	recommender := mocks.NewMockRecommender(t)
	recommender.EXPECT().Search(mock.Anything, "Oslo").Return(nil, nil).Once()

	sessions := NewSessionManager(newMemStore(t), connector, discardLogger())
	orchestrator := NewOrchestrator(recommender, mocks.NewMockImageFetcher(t), discardLogger())
	defer orchestrator.Close()

	var first, second atomic.Int32
	var listener Listener
	listener.Replace(sessions, orchestrator, func() { first.Add(1) })
	listener.Replace(sessions, orchestrator, func() { second.Add(1) })

	require.NoError(t, sessions.Connect(context.Background()))
	require.NoError(t, orchestrator.Submit(context.Background(), "Oslo"))

	assert.Zero(t, first.Load())
	assert.Equal(t, int32(4), second.Load())
}
