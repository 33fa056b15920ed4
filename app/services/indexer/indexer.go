package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"GogDB/app/common/consts/biz"
	"GogDB/app/services/indexer/internal/bootstrap"
	"GogDB/app/services/indexer/internal/config"
	"GogDB/app/services/indexer/internal/mq"
	"GogDB/app/services/indexer/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"
)

var (
	configFile = flag.String("f", "etc/indexer.yaml", "the config file")
	once       = flag.Bool("once", false, "rebuild the index once and exit")
)

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)
	ctx := svc.NewServiceContext(c)
	defer ctx.Close()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		outcome, err := mq.RunRebuild(rootCtx, ctx, biz.RebuildReasonCli)
		if err != nil {
			logx.Errorw("rebuild failed", logx.Field("err", err))
			logx.Close()
			os.Exit(1)
		}
		fmt.Printf("Indexed %d products, %d changelog entries, %d changelog summaries\n",
			outcome.Stats.Products, outcome.Stats.Changelog, outcome.Stats.Summaries)
		return
	}

	group, groupCtx := errgroup.WithContext(rootCtx)
	group.Go(func() error { return bootstrap.StartAsynqWorker(groupCtx, ctx) })
	group.Go(func() error { return bootstrap.StartAsynqScheduler(groupCtx, ctx) })

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logx.Errorw("indexer stopped with error", logx.Field("err", err))
		os.Exit(1)
	}

	logx.Info("indexer shutdown gracefully")
}
