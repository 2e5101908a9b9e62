package forwarder

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/SevaSansthan/wa-responder/internal/utils"
)

// Replica forwards raw inbound payloads to a second service, best-effort.
// The contract is explicit: never block the response on the forward, but
// surface failures to logs and metrics. Enqueue is non-blocking; a full
// queue drops the payload with a log line.

const (
	defaultQueueCapacity = 1000
	forwardTimeout       = 10 * time.Second
)

type task struct {
	requestID string
	payload   []byte
}

type Replica struct {
	url       string
	client    *http.Client
	ch        chan task
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// NewReplica starts the background worker. An empty url disables forwarding
// entirely (Enqueue becomes a no-op).
func NewReplica(url string) *Replica {
	r := &Replica{
		url:       url,
		client:    &http.Client{Timeout: forwardTimeout},
		ch:        make(chan task, defaultQueueCapacity),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
	go r.run()
	return r
}

// Enqueue schedules a forward of the raw payload. Never blocks.
func (r *Replica) Enqueue(requestID string, payload any) {
	if r.url == "" {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		utils.Zlog.Error("Replica payload marshal failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		return
	}

	select {
	case r.ch <- task{requestID: requestID, payload: body}:
	default:
		utils.Zlog.Warn("Replica queue full, dropping payload",
			zap.String("request_id", requestID))
		utils.GetMetrics().ForwardErrors.Add(1)
	}
}

func (r *Replica) run() {
	defer close(r.stoppedCh)
	for {
		select {
		case t := <-r.ch:
			r.forward(t)
		case <-r.stopCh:
			// Drain whatever is already queued, then exit
			for {
				select {
				case t := <-r.ch:
					r.forward(t)
				default:
					return
				}
			}
		}
	}
}

func (r *Replica) forward(t task) {
	ctx, cancel := context.WithTimeout(context.Background(), forwardTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(t.payload))
	if err != nil {
		r.fail(t.requestID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.fail(t.requestID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		utils.Zlog.Warn("Replica forward rejected",
			zap.String("request_id", t.requestID),
			zap.Int("status", resp.StatusCode))
		utils.GetMetrics().ForwardErrors.Add(1)
		return
	}

	utils.Zlog.Debug("Replica forward delivered",
		zap.String("request_id", t.requestID))
}

func (r *Replica) fail(requestID string, err error) {
	utils.Zlog.Warn("Replica forward failed",
		zap.String("request_id", requestID),
		zap.Error(err))
	utils.GetMetrics().ForwardErrors.Add(1)
}

// Stop drains the queue and stops the worker.
func (r *Replica) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}
