// Package orchestrator coordinates one conversation turn end to end:
// classification, dispatch, aggregation, reply composition and session
// persistence.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/exec"
	"github.com/retail-sales-agent/server/agent/respond"
	"github.com/retail-sales-agent/server/agent/retailapi"
	"github.com/retail-sales-agent/server/agent/state"
)

// Backends bundles the retail services the orchestrator drives directly for
// cart mutations and order placement.
type Backends struct {
	Catalog     *retailapi.Catalog
	Inventory   *retailapi.Inventory
	Payments    *retailapi.Payments
	Loyalty     *retailapi.Loyalty
	Fulfillment *retailapi.Fulfillment
}

// Service is the conversational core. ProcessTurn never returns an error;
// every internal fault degrades to an apology response.
type Service struct {
	store      state.Store
	classifier contract.Classifier
	harness    *exec.Harness
	composer   *respond.Composer
	backends   Backends

	locks    *sessionLocks
	pipeline compose.Runnable[*turnState, *turnState]
	now      func() time.Time
}

// New wires the service and compiles its turn pipeline.
func New(ctx context.Context, store state.Store, classifier contract.Classifier, harness *exec.Harness, composer *respond.Composer, backends Backends) (*Service, error) {
	s := &Service{
		store:      store,
		classifier: classifier,
		harness:    harness,
		composer:   composer,
		backends:   backends,
		locks:      newSessionLocks(),
		now:        time.Now,
	}

	pipeline, err := s.compilePipeline(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile turn pipeline: %w", err)
	}
	s.pipeline = pipeline
	return s, nil
}

// ProcessTurn handles one user message. Turns on the same session are
// serialized; different sessions proceed concurrently.
func (s *Service) ProcessTurn(ctx context.Context, req contract.TurnRequest) contract.TurnResponse {
	if strings.TrimSpace(req.Text) == "" {
		return contract.TurnResponse{
			Success:     false,
			SessionID:   req.SessionID,
			Message:     "I didn't catch that. Could you type your message again?",
			Timestamp:   s.now(),
			ErrorDetail: fmt.Sprintf("%v: empty message", contract.ErrValidation),
		}
	}

	session := s.resolveSession(ctx, req)

	unlock := s.locks.Lock(session.SessionID)
	defer unlock()

	// The session may have changed while we waited for the lock.
	if fresh, err := s.store.Load(ctx, session.SessionID); err == nil {
		session = fresh
	}

	response := s.runTurn(ctx, req, session)

	session.Append(state.RoleUser, req.Text, nil, s.now())
	session.Append(state.RoleAgent, response.Message, snapshotProducts(response.Products), s.now())
	if err := s.store.Save(ctx, session); err != nil {
		log.Error().Err(err).Str("session_id", session.SessionID).Msg("session save failed")
	}

	return response
}

// historySnapshotLimit caps how many shown products ride along on an agent
// history entry.
const historySnapshotLimit = 3

func snapshotProducts(products []retailapi.RankedProduct) []retailapi.RankedProduct {
	if len(products) > historySnapshotLimit {
		products = products[:historySnapshotLimit]
	}
	return products
}

// runTurn executes the pipeline, converting panics and pipeline errors into
// the apology response.
func (s *Service) runTurn(ctx context.Context, req contract.TurnRequest, session *state.Session) (response contract.TurnResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Str("session_id", session.SessionID).Msg("turn panicked")
			response = s.apology(session.SessionID, fmt.Sprintf("panic: %v", r))
		}
	}()

	ts, err := s.pipeline.Invoke(ctx, &turnState{req: req, session: session})
	if err != nil {
		log.Error().Err(err).Str("session_id", session.SessionID).Msg("turn pipeline failed")
		return s.apology(session.SessionID, err.Error())
	}

	return contract.TurnResponse{
		Success:        true,
		SessionID:      session.SessionID,
		Message:        ts.reply,
		Products:       ts.result.Products,
		Pricing:        ts.result.Pricing,
		PaymentMethods: ts.result.PaymentMethods,
		LoyaltyInfo:    ts.result.LoyaltyInfo,
		Fulfillment:    ts.result.Fulfillment,
		Order:          ts.result.Order,
		TrackingID:     ts.result.TrackingID,
		Support:        ts.result.Support,
		Intent:         ts.tc.Intent,
		Timestamp:      s.now(),
	}
}

// resolveSession loads the session or starts a fresh one. Store failures
// other than not-found degrade to an ephemeral session rather than failing
// the turn.
func (s *Service) resolveSession(ctx context.Context, req contract.TurnRequest) *state.Session {
	if strings.TrimSpace(req.SessionID) == "" {
		return state.NewSession("", req.CustomerID, s.now())
	}

	session, err := s.store.Load(ctx, req.SessionID)
	if err == nil {
		if req.CustomerID != "" && session.CustomerID != req.CustomerID {
			session.CustomerID = req.CustomerID
		}
		return session
	}
	if !errors.Is(err, state.ErrSessionNotFound) {
		log.Error().Err(err).Str("session_id", req.SessionID).Msg("session load failed")
	}
	return state.NewSession(req.SessionID, req.CustomerID, s.now())
}

func (s *Service) apology(sessionID, detail string) contract.TurnResponse {
	return contract.TurnResponse{
		Success:     false,
		SessionID:   sessionID,
		Message:     respond.Apology,
		Timestamp:   s.now(),
		ErrorDetail: detail,
	}
}
