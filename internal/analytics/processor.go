package analytics

import (
	"PressLink-Backend/internal/domain"
	"PressLink-Backend/internal/repository"
	"PressLink-Backend/pkg/useragent"
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ClickData is a click enrichment job. It references the resolved link;
// the aggregate counter was already incremented synchronously by the
// resolver, so dropping a job loses detail, never the count.
type ClickData struct {
	LinkID    int64
	ShortID   string
	IPAddress *string
	UserAgent *string
	Referer   *string
	ClickedAt time.Time
}

// ProcessorConfig holds configuration for the analytics processor.
type ProcessorConfig struct {
	WorkerCount     int           // Number of worker goroutines
	BufferSize      int           // Size of the job queue buffer
	RetryAttempts   int           // Number of retry attempts for failed jobs
	RetryDelay      time.Duration // Base delay between retries
	ShutdownTimeout time.Duration // Time to wait for graceful shutdown
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() ProcessorConfig {
	return ProcessorConfig{
		WorkerCount:     3,
		BufferSize:      1000,
		RetryAttempts:   3,
		RetryDelay:      time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Processor records detailed click rows asynchronously so resolution
// latency never depends on analytics writes.
type Processor struct {
	config   ProcessorConfig
	storage  repository.Storage
	parser   *useragent.Parser
	log      *zap.Logger
	jobQueue chan *ClickData
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
	mu       sync.RWMutex
}

// NewProcessor creates a new analytics processor.
func NewProcessor(storage repository.Storage, parser *useragent.Parser, log *zap.Logger, config ProcessorConfig) *Processor {
	ctx, cancel := context.WithCancel(context.Background())

	return &Processor{
		config:   config,
		storage:  storage,
		parser:   parser,
		log:      log,
		jobQueue: make(chan *ClickData, config.BufferSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins processing click data.
func (p *Processor) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("processor already started")
	}

	p.log.Info("starting analytics processor",
		zap.Int("workers", p.config.WorkerCount),
		zap.Int("buffer_size", p.config.BufferSize),
		zap.Int("retry_attempts", p.config.RetryAttempts),
	)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.started = true
	return nil
}

// Stop gracefully shuts down the processor.
func (p *Processor) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return fmt.Errorf("processor not started")
	}

	p.log.Info("stopping analytics processor")

	p.cancel()
	close(p.jobQueue)

	// Wait for all workers to finish with timeout
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info("analytics processor stopped gracefully")
	case <-time.After(p.config.ShutdownTimeout):
		p.log.Warn("analytics processor shutdown timeout reached")
		return fmt.Errorf("shutdown timeout reached")
	}

	p.started = false
	return nil
}

// SubmitClick queues a click for asynchronous recording. A full queue
// drops the job immediately rather than blocking the caller.
func (p *Processor) SubmitClick(clickData *ClickData) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.started {
		return fmt.Errorf("processor not started")
	}

	select {
	case p.jobQueue <- clickData:
		p.log.Debug("click data submitted for processing", zap.String("short_id", clickData.ShortID))
		return nil
	case <-p.ctx.Done():
		return fmt.Errorf("processor is shutting down")
	default:
		p.log.Error("analytics queue is full, dropping click data",
			zap.String("short_id", clickData.ShortID),
			zap.Int("queue_size", len(p.jobQueue)),
		)
		return fmt.Errorf("analytics queue is full")
	}
}

// worker processes click data with retry logic.
func (p *Processor) worker(workerID int) {
	defer p.wg.Done()

	log := p.log.With(zap.Int("worker_id", workerID))
	log.Info("analytics worker started")

	for {
		select {
		case clickData := <-p.jobQueue:
			if clickData == nil {
				// Channel closed, worker should exit
				log.Info("analytics worker stopped")
				return
			}

			p.processClickWithRetry(log, clickData)

		case <-p.ctx.Done():
			log.Info("analytics worker received shutdown signal")
			return
		}
	}
}

// processClickWithRetry processes a single click with retry logic.
func (p *Processor) processClickWithRetry(log *zap.Logger, clickData *ClickData) {
	var lastErr error

	for attempt := 1; attempt <= p.config.RetryAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(p.ctx, 30*time.Second)
		err := p.processClick(ctx, log, clickData)
		cancel()

		if err == nil {
			if attempt > 1 {
				log.Info("click recording succeeded after retry",
					zap.String("short_id", clickData.ShortID),
					zap.Int("attempt", attempt),
				)
			}
			return
		}

		lastErr = err
		log.Warn("click recording failed",
			zap.String("short_id", clickData.ShortID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.config.RetryAttempts),
			zap.Error(err),
		)

		if attempt == p.config.RetryAttempts {
			break
		}

		// Exponential backoff delay
		delay := p.config.RetryDelay * time.Duration(1<<(attempt-1))

		select {
		case <-time.After(delay):
		case <-p.ctx.Done():
			log.Info("worker shutdown during retry delay")
			return
		}
	}

	log.Error("click recording failed after all retries",
		zap.String("short_id", clickData.ShortID),
		zap.Int("attempts", p.config.RetryAttempts),
		zap.Error(lastErr),
	)
}

// processClick enriches one click with device information and records it.
func (p *Processor) processClick(ctx context.Context, log *zap.Logger, clickData *ClickData) error {
	click := &domain.Click{
		LinkID:    clickData.LinkID,
		UserAgent: clickData.UserAgent,
		Referer:   clickData.Referer,
		ClickedAt: clickData.ClickedAt,
	}

	if clickData.IPAddress != nil {
		if ip := net.ParseIP(*clickData.IPAddress); ip != nil {
			click.IPAddress = &ip
		}
	}

	if clickData.UserAgent != nil && p.parser != nil {
		info := p.parser.ParseUserAgent(*clickData.UserAgent)
		click.DeviceType = &info.DeviceType
		click.Browser = &info.Browser
		click.OS = &info.OS

		log.Debug("processed User-Agent",
			zap.String("device_type", info.DeviceType),
			zap.String("browser", info.Browser),
			zap.String("os", info.OS),
			zap.String("short_id", clickData.ShortID),
		)
	}

	if err := p.storage.RecordClick(ctx, click); err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}

	log.Debug("click recorded successfully",
		zap.String("short_id", clickData.ShortID),
		zap.Int64("link_id", clickData.LinkID),
	)

	return nil
}

// GetStats returns processor statistics.
func (p *Processor) GetStats() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"started":        p.started,
		"queue_length":   len(p.jobQueue),
		"queue_capacity": cap(p.jobQueue),
		"worker_count":   p.config.WorkerCount,
		"retry_attempts": p.config.RetryAttempts,
	}
}
