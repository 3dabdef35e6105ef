package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err = a.sched.AddFunc("@daily", a.SchedPurgeUsersTask)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	if spec := a.appConfig.Inventory.LowStockReport; spec != "" {
		if _, err = a.sched.AddFunc(spec, a.SchedLowStockReportTask); err != nil {
			zap.S().Errorf("init job error %s", err.Error())
		}
	}

	a.sched.Start()
}

// SchedPurgeUsersTask removes users deactivated longer than the retention period
func (a *Application) SchedPurgeUsersTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	days := a.appConfig.Inventory.UserRetentionDays
	if days <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	before := time.Now().Add(-time.Hour * 24 * time.Duration(days))
	if _, err := a.services.Users.PurgeDeleted(ctx, before); err != nil {
		zap.L().Error("purge deactivated users failed", zap.Error(err))
	}
}

// SchedLowStockReportTask logs how many products are at or near zero stock
func (a *Application) SchedLowStockReportTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	products := a.services.Products
	count, err := products.LowStockCount(ctx)
	if err != nil {
		zap.L().Error("low stock report failed", zap.Error(err))
		return
	}
	if count > 0 {
		zap.L().Warn("products with low stock",
			zap.Int64("count", count),
			zap.Int("threshold", products.LowStockThreshold()))
	}
}
