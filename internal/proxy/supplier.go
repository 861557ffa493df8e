package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// maxParallelChecks bounds concurrent proxy probes
const maxParallelChecks = 16

// Supplier hands out outbound proxies for the catalog client in round-robin order
type Supplier interface {
	Get() string
	Len() int
}

type supplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewSupplier probes the configured proxies against probeURL in parallel and
// keeps the ones that answer, preserving their configured order.
func NewSupplier(ctx context.Context, proxies []string, probeURL string, timeout time.Duration) Supplier {
	if len(proxies) == 0 {
		return &supplier{}
	}

	log.Infof("🔄 Testing %d proxies...", len(proxies))

	working := make([]bool, len(proxies))
	semaphore := make(chan struct{}, maxParallelChecks)

	var wg sync.WaitGroup
	for i, proxyURL := range proxies {
		wg.Add(1)

		go func() {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			working[i] = probe(ctx, proxyURL, probeURL, timeout)
		}()
	}
	wg.Wait()

	valid := make([]string, 0, len(proxies))
	for i, ok := range working {
		if ok {
			valid = append(valid, proxies[i])
		} else {
			log.Warnf("❌ Proxy %s is not working, skipping", proxies[i])
		}
	}

	log.Infof("Proxy supplier initialized with %d working proxies out of %d", len(valid), len(proxies))

	return &supplier{proxies: valid}
}

// Get returns the next proxy URL, or "" when none is available
func (p *supplier) Get() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	proxy := p.proxies[p.current]
	p.current = (p.current + 1) % len(p.proxies)

	return proxy
}

func (p *supplier) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.proxies)
}

func probe(ctx context.Context, proxyURL, probeURL string, timeout time.Duration) bool {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetProxy(proxyURL)
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Head(probeURL)
	if err != nil {
		log.Debugf("Proxy probe failed for %s: %v", proxyURL, err)
		return false
	}

	if resp.IsError() {
		log.Debugf("Proxy probe failed for %s with status: %s", proxyURL, resp.Status())
		return false
	}

	return true
}
