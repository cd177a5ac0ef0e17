package services

import (
	"sync"
	"time"
)

// Metrics counts interview activity for the metrics endpoint.
type Metrics struct {
	mu                  sync.RWMutex
	interviewsStarted   int64
	interviewsCompleted int64
	interviewsAbandoned int64
	answersScored       int64
	llmCallsTotal       int64
	llmCallsFailed      int64
	llmCallsByKind      map[string]int64
	lastUpdateTime      time.Time
}

type MetricsSnapshot struct {
	InterviewsStarted   int64            `json:"interviews_started"`
	InterviewsCompleted int64            `json:"interviews_completed"`
	InterviewsAbandoned int64            `json:"interviews_abandoned"`
	AnswersScored       int64            `json:"answers_scored"`
	LLMCallsTotal       int64            `json:"llm_calls_total"`
	LLMCallsFailed      int64            `json:"llm_calls_failed"`
	LLMCallsByKind      map[string]int64 `json:"llm_calls_by_kind"`
	LastUpdateTime      time.Time        `json:"last_update_time"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		llmCallsByKind: make(map[string]int64),
		lastUpdateTime: time.Now(),
	}
}

func (m *Metrics) update(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementInterviewsStarted() {
	m.update(func() { m.interviewsStarted++ })
}

func (m *Metrics) IncrementInterviewsCompleted() {
	m.update(func() { m.interviewsCompleted++ })
}

func (m *Metrics) IncrementInterviewsAbandoned() {
	m.update(func() { m.interviewsAbandoned++ })
}

func (m *Metrics) IncrementAnswersScored() {
	m.update(func() { m.answersScored++ })
}

// RecordLLMCall satisfies llm.CallRecorder.
func (m *Metrics) RecordLLMCall(kind string, err error) {
	m.update(func() {
		m.llmCallsTotal++
		m.llmCallsByKind[kind]++
		if err != nil {
			m.llmCallsFailed++
		}
	})
}

func (m *Metrics) GetSnapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byKind := make(map[string]int64, len(m.llmCallsByKind))
	for k, v := range m.llmCallsByKind {
		byKind[k] = v
	}
	return MetricsSnapshot{
		InterviewsStarted:   m.interviewsStarted,
		InterviewsCompleted: m.interviewsCompleted,
		InterviewsAbandoned: m.interviewsAbandoned,
		AnswersScored:       m.answersScored,
		LLMCallsTotal:       m.llmCallsTotal,
		LLMCallsFailed:      m.llmCallsFailed,
		LLMCallsByKind:      byKind,
		LastUpdateTime:      m.lastUpdateTime,
	}
}
