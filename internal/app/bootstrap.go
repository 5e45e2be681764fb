package app

import (
	"errors"

	"github.com/peptide-store/internal/config"
	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/provider"
	"github.com/peptide-store/internal/router"
	"github.com/peptide-store/internal/worker"

	"gorm.io/gorm"
)

// BuildRunner 按启动模式装配服务
func BuildRunner(cfg *config.Config, container *provider.Container, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if container == nil {
		return nil, errors.New("container is nil")
	}

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	if mode == ModeAll || mode == ModeWorker {
		switch {
		case cfg.Queue.Enabled:
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		case mode == ModeWorker:
			return nil, errors.New("worker mode requires queue.enabled=true")
		default:
			// 队列关闭时确认邮件同步发送，无需 worker
			logger.Infow("app_worker_skipped", "reason", "queue_disabled")
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(db *gorm.DB, opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	container, err := provider.NewContainer(opts.Config, db)
	if err != nil {
		return err
	}
	defer container.Close()

	runner, err := BuildRunner(opts.Config, container, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
