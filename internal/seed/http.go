package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/mingle/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Put performs a PUT request with JSON body.
func (c *HTTPClient) Put(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// batch is one PUT payload destined for a directory endpoint.
type batch struct {
	url  string
	body interface{}
	size int
}

// submitBatches pushes directory batches concurrently using a worker pool.
func submitBatches(ctx context.Context, config *Config, batches []batch, stats *Stats) error {
	logger.Get().Info(ctx, "submitting directory batches",
		logger.Int("batches", len(batches)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)

	var (
		written int64
		failed  int64
	)

	batchChan := make(chan batch, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for b := range batchChan {
				select {
				case <-ctx.Done():
					return
				default:
					n, err := submitSingleBatch(ctx, client, b)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							logger.Get().Warn(ctx, "batch submission failed",
								logger.String("url", b.url),
								logger.Error(err))
						}
						continue
					}
					atomic.AddInt64(&written, int64(n))
				}
			}
		}()
	}

	go func() {
		defer close(batchChan)
		for _, b := range batches {
			select {
			case <-ctx.Done():
				return
			case batchChan <- b:
			}
		}
	}()

	wg.Wait()

	stats.EntitiesWritten = int(atomic.LoadInt64(&written))
	stats.BatchesFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "directory submission completed",
		logger.Int("entitiesWritten", stats.EntitiesWritten),
		logger.Int("batchesFailed", stats.BatchesFailed))

	if stats.BatchesFailed > 0 && stats.EntitiesWritten == 0 {
		return fmt.Errorf("all %d batches failed", stats.BatchesFailed)
	}
	return nil
}

// submitSingleBatch PUTs one batch and returns the written count.
func submitSingleBatch(ctx context.Context, client *HTTPClient, b batch) (int, error) {
	resp, err := client.Put(ctx, b.url, b.body)
	if err != nil {
		return 0, err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var ack ingestResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		// Treat an unparseable 200 as the full batch written
		return b.size, nil
	}
	return ack.Written, nil
}
