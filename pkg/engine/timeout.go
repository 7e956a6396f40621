package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chazu/sdfcore/pkg/recipe"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// ErrSuperseded is returned when a newer evaluation started while this
// one was running.
var ErrSuperseded = errors.New("engine: evaluation superseded by newer request")

// evalResult passes evaluation results through channels.
type evalResult struct {
	graph  *recipe.Graph
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, but returns a timeout error
// if the evaluation exceeds timeout. It uses a generation counter to
// discard stale results from previous evaluations.
//
// On timeout, the goroutine may still be running; the generation check
// ensures its result is discarded when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	timeout time.Duration,
) (*recipe.Graph, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, ErrSuperseded
		}
		return res.graph, res.errors, res.err

	case <-timer.C:
		log.Printf("engine: evaluation %d timed out after %s", gen, timeout)
		return nil, nil, fmt.Errorf("engine: evaluation timed out after %s", timeout)
	}
}
