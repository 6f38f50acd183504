package cmd

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipjonsen/cryptopunks/base/logger/xzap"
	"github.com/philipjonsen/cryptopunks/src/api/router"
	"github.com/philipjonsen/cryptopunks/src/app"
	"github.com/philipjonsen/cryptopunks/src/config"
	"github.com/philipjonsen/cryptopunks/src/service/svc"
)

var DaemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "serve the collectible marketplace ledger.",
	Long:  "serve the collectible marketplace ledger.",
	Run: func(cmd *cobra.Command, args []string) {
		wg := &sync.WaitGroup{}
		wg.Add(1)

		ctx, cancel := context.WithCancel(context.Background())

		onExit := make(chan error, 1)

		go func() {
			defer wg.Done()

			cfg, err := config.UnmarshalCmdConfig()
			if err != nil {
				xzap.WithContext(ctx).Error("failed to unmarshal config", zap.Error(err))
				onExit <- err
				return
			}

			serverCtx, err := svc.NewServiceContext(cfg)
			if err != nil {
				xzap.WithContext(ctx).Error("failed to create service context", zap.Error(err))
				onExit <- err
				return
			}

			xzap.WithContext(ctx).Info("market server start", zap.Any("config", cfg))

			if cfg.Monitor.PprofEnable {
				go func() {
					_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", cfg.Monitor.PprofPort), nil)
				}()
			}

			r := router.NewRouter(serverCtx)
			platform, err := app.NewPlatform(cfg, r, serverCtx)
			if err != nil {
				xzap.WithContext(ctx).Error("failed to create platform", zap.Error(err))
				onExit <- err
				return
			}
			if err := platform.Start(); err != nil {
				onExit <- err
			}
		}()

		onSignal := make(chan os.Signal, 1)
		signal.Notify(onSignal, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-onSignal:
			cancel()
			xzap.WithContext(ctx).Info("exit by signal", zap.String("signal", sig.String()))
			os.Exit(0)
		case err := <-onExit:
			cancel()
			xzap.WithContext(ctx).Error("exit by error", zap.Error(err))
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(DaemonCmd)
}
