package metrics

import (
	"sync"
	"sync/atomic"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

// Collector keeps cheap in-process counters exposed on /metrics.
type Collector struct {
	requests  atomic.Int64
	responses [6]atomic.Int64 // by status class, index = status/100

	mu     sync.Mutex
	errors map[common.Code]int64
}

func NewCollector() *Collector {
	return &Collector{errors: make(map[common.Code]int64)}
}

func (c *Collector) ObserveRequest() {
	c.requests.Add(1)
}

func (c *Collector) ObserveResponse(status int) {
	class := status / 100
	if class >= 1 && class < len(c.responses) {
		c.responses[class].Add(1)
	}
}

func (c *Collector) ObserveError(code common.Code) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors[code]++
}

type Snapshot struct {
	Requests  int64                 `json:"requests"`
	Responses map[string]int64      `json:"responses"`
	Errors    map[common.Code]int64 `json:"errors"`
}

func (c *Collector) Snapshot() Snapshot {
	snap := Snapshot{
		Requests:  c.requests.Load(),
		Responses: map[string]int64{},
		Errors:    map[common.Code]int64{},
	}
	classes := [...]string{"", "1xx", "2xx", "3xx", "4xx", "5xx"}
	for i := 1; i < len(c.responses); i++ {
		if count := c.responses[i].Load(); count > 0 {
			snap.Responses[classes[i]] = count
		}
	}
	c.mu.Lock()
	for code, count := range c.errors {
		snap.Errors[code] = count
	}
	c.mu.Unlock()
	return snap
}
