package cron

import (
	"Portfolio/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine           *cron.Cron
	orphanCleanupJob *job.OrphanCleanupJob
	orphanSpec       string
}

func NewCronManager(orphanCleanupJob *job.OrphanCleanupJob, orphanSpec string) *Manager {
	return &Manager{
		engine:           cron.New(cron.WithSeconds()),
		orphanCleanupJob: orphanCleanupJob,
		orphanSpec:       orphanSpec,
	}
}

// RegisterJobs 注册定时任务，spec 为空时不启用
func (s *Manager) RegisterJobs() error {
	if s.orphanSpec == "" {
		log.Info("orphan cleanup job disabled")
		return nil
	}
	if _, err := s.engine.AddJob(s.orphanSpec, s.orphanCleanupJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
