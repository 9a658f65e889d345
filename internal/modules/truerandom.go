package modules

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// defaultPoolSize caps the entropy pool; bits harvested beyond it are
// discarded until clients drain the pool.
const defaultPoolSize = 1 << 20

// TrueRandom harvests entropy from radio noise and serves it over HTTP. The
// least significant bit of each captured sample is fed through a von Neumann
// extractor to strip bias before entering the pool.
type TrueRandom struct {
	receiveOnly

	Host     string
	Port     int
	PoolSize int // pool capacity in bytes, 0 means defaultPoolSize

	mu       sync.Mutex
	pool     []byte
	pending  byte // first raw bit of the current pair
	havePair bool
	bits     byte // partially assembled output byte
	bitCount int
}

func (m *TrueRandom) Name() string { return "true-random" }

func (m *TrueRandom) poolSize() int {
	if m.PoolSize == 0 {
		return defaultPoolSize
	}
	return m.PoolSize
}

func (m *TrueRandom) Init(ctx InitContext) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", m.handleStatus)
	mux.HandleFunc("GET /raw/{len}", m.handleRaw)
	mux.HandleFunc("GET /data/number/{min}/{max}", m.handleNumber)
	mux.HandleFunc("GET /data/integer/{min}/{max}", m.handleInteger)

	address := fmt.Sprintf("%s:%d", m.Host, m.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logrus.WithField("address", address).Info("serving entropy api")
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("entropy api failed")
		}
	}()
	return nil
}

func (m *TrueRandom) Input(samples []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sample := range samples {
		bit := byte(int32(sample*math.MaxInt32) & 1)

		// Von Neumann extractor: only unequal pairs carry an unbiased bit.
		if !m.havePair {
			m.pending = bit
			m.havePair = true
			continue
		}
		m.havePair = false
		if m.pending == bit {
			continue
		}

		m.bits = m.bits<<1 | m.pending
		m.bitCount++
		if m.bitCount < 8 {
			continue
		}

		m.bitCount = 0
		if len(m.pool) < m.poolSize() {
			m.pool = append(m.pool, m.bits)
		}
	}
}

// take removes n bytes from the pool, nil when not enough are available.
func (m *TrueRandom) take(n int) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n <= 0 || len(m.pool) < n {
		return nil
	}

	out := append([]byte(nil), m.pool[:n]...)
	m.pool = m.pool[:copy(m.pool, m.pool[n:])]
	return out
}

// entropy estimates the Shannon entropy of the pooled bytes, normalized to
// [0, 1].
func (m *TrueRandom) entropy() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pool) == 0 {
		return 0
	}

	var counts [256]int
	for _, b := range m.pool {
		counts[b]++
	}

	total := float64(len(m.pool))
	bits := 0.0
	for _, count := range counts {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		bits -= p * math.Log2(p)
	}
	return bits / 8
}

func (m *TrueRandom) handleStatus(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	size := len(m.pool)
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"size":     size,
		"capacity": m.poolSize(),
		"entropy":  m.entropy(),
	})
}

func (m *TrueRandom) handleRaw(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("len"))
	if err != nil || n <= 0 {
		http.Error(w, "invalid length", http.StatusBadRequest)
		return
	}

	data := m.take(n)
	if data == nil {
		http.Error(w, "entropy pool exhausted", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}

// random64 pulls eight bytes from the pool as a uint64.
func (m *TrueRandom) random64() (uint64, bool) {
	data := m.take(8)
	if data == nil {
		return 0, false
	}
	return binary.BigEndian.Uint64(data), true
}

func (m *TrueRandom) handleNumber(w http.ResponseWriter, r *http.Request) {
	low, err1 := strconv.ParseFloat(r.PathValue("min"), 64)
	high, err2 := strconv.ParseFloat(r.PathValue("max"), 64)
	if err1 != nil || err2 != nil || high <= low {
		http.Error(w, "invalid range", http.StatusBadRequest)
		return
	}

	raw, ok := m.random64()
	if !ok {
		http.Error(w, "entropy pool exhausted", http.StatusServiceUnavailable)
		return
	}

	unit := float64(raw) / float64(math.MaxUint64)
	fmt.Fprintf(w, "%v", low+unit*(high-low))
}

func (m *TrueRandom) handleInteger(w http.ResponseWriter, r *http.Request) {
	low, err1 := strconv.ParseInt(r.PathValue("min"), 10, 64)
	high, err2 := strconv.ParseInt(r.PathValue("max"), 10, 64)
	if err1 != nil || err2 != nil || high <= low {
		http.Error(w, "invalid range", http.StatusBadRequest)
		return
	}

	// The unsigned difference is exact for any ordered pair, but the +1 on
	// the full int64 range would wrap the span to zero.
	width := uint64(high) - uint64(low)
	if width >= math.MaxInt64 {
		http.Error(w, "range too wide", http.StatusBadRequest)
		return
	}

	raw, ok := m.random64()
	if !ok {
		http.Error(w, "entropy pool exhausted", http.StatusServiceUnavailable)
		return
	}

	fmt.Fprintf(w, "%d", low+int64(raw%(width+1)))
}
