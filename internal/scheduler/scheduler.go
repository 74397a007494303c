package scheduler

import (
	"errors"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"fiscal-ops-backend/internal/services/monthly"
)

const defaultSpec = "0 0 1 * *"

// Start schedules the monthly job and returns the running cron instance.
// The schedule can be overridden with MONTHLY_CRON.
func Start(job *monthly.Service, log *logrus.Logger) (*cron.Cron, error) {
	spec := os.Getenv("MONTHLY_CRON")
	if spec == "" {
		spec = defaultSpec
	}

	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := c.AddFunc(spec, func() {
		result, err := job.Run()
		if err != nil {
			if errors.Is(err, monthly.ErrAlreadyRunning) {
				log.Warn("monthly job skipped, previous run still in progress")
				return
			}
			log.WithError(err).Error("monthly job failed")
			return
		}
		log.WithFields(logrus.Fields{
			"competence":     result.Competence,
			"companies":      result.Companies,
			"configsCreated": result.ConfigsCreated,
			"batchesSeeded":  result.BatchesSeeded,
			"failures":       len(result.Failures),
		}).Info("monthly job finished")
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.WithField("spec", spec).Info("monthly scheduler started")
	return c, nil
}
