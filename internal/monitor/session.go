package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/Chiggixo/EzyMedi/internal/logger"
	"github.com/Chiggixo/EzyMedi/internal/models"
)

// defaultPollInterval matches the bedside refresh cadence of the ward
// display.
const defaultPollInterval = 800 * time.Millisecond

// historyLabelLayout renders the reading timestamp for the trend strip.
const historyLabelLayout = "15:04:05"

// Options carries Session tunables; zero values fall back to defaults.
type Options struct {
	Interval   time.Duration
	Thresholds Thresholds
	Log        *logger.Logger
}

// Session owns the monitoring state for one watched subject: the latest
// reading, the relayed anomaly report, the local emphasis flags, the
// rolling history and the link-health state, all guarded by one mutex.
//
// Every fetch carries a sequence number. A response mutates state only if
// its sequence is still the newest issued and the subject is unchanged,
// so reordered, post-switch and post-stop responses are discarded rather
// than applied out of order.
type Session struct {
	fetch      Fetcher
	log        *logger.Logger
	interval   time.Duration
	thresholds Thresholds

	// startMu serializes Start/Stop transitions so two callers cannot
	// race a cadence handoff.
	startMu sync.Mutex

	mu       sync.Mutex
	subject  string
	seq      uint64
	conn     models.ConnectionState
	latest   *models.VitalSigns
	report   *models.AnomalyReport
	progress float64
	flags    models.VitalFlags
	history  *HistoryBuffer
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewSession(fetch Fetcher, opts Options) *Session {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	thresholds := opts.Thresholds
	if thresholds == (Thresholds{}) {
		thresholds = DefaultThresholds()
	}
	log := opts.Log
	if log == nil {
		log = logger.Get(logger.InfoLevel)
	}
	return &Session{
		fetch:      fetch,
		log:        log,
		interval:   interval,
		thresholds: thresholds,
		conn:       models.StateDisconnected,
		history:    NewHistoryBuffer(DefaultHistoryCapacity),
	}
}

// Start binds the session to subjectID and begins the polling cadence.
// Any previous cadence is fully stopped first, and the snapshot, report
// and history are cleared in the same critical section as the subject
// swap, so points from different subjects never mix. The link state
// resets to DISCONNECTED until the first poll lands.
func (s *Session) Start(subjectID string) {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	s.halt()

	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.seq++
	s.subject = subjectID
	s.latest = nil
	s.report = nil
	s.progress = 0
	s.flags = models.VitalFlags{}
	s.history.Reset()
	s.conn = models.StateDisconnected
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	s.log.Infow("session started", "subject", subjectID, "interval", s.interval)
	go s.run(ctx)
}

// Stop halts the cadence deterministically: after it returns no further
// state mutation happens, including from fetches still in flight.
func (s *Session) Stop() {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	s.halt()
}

// halt is the locked core of Stop; callers hold startMu. Bumping the
// sequence before waiting makes every in-flight response stale.
func (s *Session) halt() {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return
	}
	s.seq++
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.log.Infow("session stopped")
}

func (s *Session) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// First sample immediately, then on cadence.
	s.dispatch(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.dispatch(ctx)
		}
	}
}

// dispatch issues one numbered fetch without blocking the cadence; a
// slow response never delays the next tick.
func (s *Session) dispatch(ctx context.Context) {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	subject := s.subject
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		envelope, err := s.fetch.LatestVitals(ctx, subject)
		s.apply(subject, seq, envelope, err)
	}()
}

// apply folds one fetch outcome into the session state, unless the
// response is stale.
func (s *Session) apply(subject string, seq uint64, envelope models.VitalsResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq || subject != s.subject {
		return
	}

	if err != nil {
		s.conn = models.StateDisconnected
		s.log.Debugw("poll failed", "subject", subject, "err", err)
		return
	}
	if envelope.Error != "" || envelope.Vitals == nil {
		s.conn = models.StateDisconnected
		s.log.Debugw("node declined", "subject", subject, "node_error", envelope.Error)
		return
	}

	v := *envelope.Vitals
	s.latest = &v
	s.report = envelope.Report
	s.progress = envelope.ABPProgress
	s.flags = s.thresholds.Flags(v)
	s.history.Push(models.HistoryPoint{
		Label:       v.Timestamp.Format(historyLabelLayout),
		ECGBpm:      v.ECGBpm,
		SpO2Percent: v.SpO2Percent,
	})
	s.conn = models.StateConnected
}

// Display returns a coherent copy of everything a renderer needs. The
// copy shares nothing mutable with the session.
func (s *Session) Display() models.DisplaySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.DisplaySnapshot{
		SubjectID:   s.subject,
		Connection:  s.conn,
		ABPProgress: s.progress,
		Flags:       s.flags,
		History:     s.history.Points(),
	}
	if s.latest != nil {
		v := *s.latest
		snap.Vitals = &v
	}
	if s.report != nil {
		r := *s.report
		r.Alerts = append([]string(nil), r.Alerts...)
		snap.Report = &r
	}
	return snap
}

// Export builds the interchange document for the current snapshot and
// the filename it should be saved under. With nothing fetched yet it
// returns ErrNoSnapshot and changes nothing.
func (s *Session) Export() (models.Observation, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest == nil {
		return models.Observation{}, "", ErrNoSnapshot
	}
	return BuildObservation(*s.latest, s.subject), ExportFilename(s.subject), nil
}

// Subject returns the currently bound subject id, which may be empty.
func (s *Session) Subject() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subject
}

// Active reports whether a cadence is currently running.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}
