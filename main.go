package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/decker502/pratica/pkg/app"
	"github.com/decker502/pratica/pkg/config"
	"github.com/decker502/pratica/pkg/content"
	"github.com/decker502/pratica/pkg/embedded"
)

const windowTitle = "Prova Prática"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd 命令行参数优先于 .env 和环境变量
func newRootCmd() *cobra.Command {
	env := config.LoadEnv()

	cfg := app.Config{
		Verbose:        env.Verbose,
		ContentPath:    env.ContentPath,
		GameConfigPath: env.GameConfigPath,
		ReducedMotion:  env.ReducedMotion,
	}

	cmd := &cobra.Command{
		Use:          "pratica",
		Short:        "Prova Prática: identify the structures marked on each image",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable verbose logging")
	flags.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "path to a content JSON file (defaults to the embedded content)")
	flags.StringVar(&cfg.GameConfigPath, "config", cfg.GameConfigPath, "path to a game config YAML file")
	flags.IntVar(&cfg.StartRound, "round", 0, "start directly at round N (1-based), skipping the cover")
	flags.BoolVar(&cfg.ReducedMotion, "reduced-motion", cfg.ReducedMotion, "disable confetti and avatar tweening")

	cmd.AddCommand(newValidateCmd())
	return cmd
}

// newValidateCmd 检查内容文件并打印警告（内容作者使用）
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <content.json>",
		Short: "Check a content file and list its warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := content.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("invalid content %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d round(s), %d warning(s)\n", len(c.Rounds), len(c.Warnings))
			for _, r := range c.Rounds {
				fmt.Fprintf(out, "  round %d: %d reference(s), %d hotspot(s)\n", r.ID, len(r.References), len(r.Hotspots))
			}
			for _, w := range c.Warnings {
				fmt.Fprintf(out, "  warning: %s\n", w)
			}
			return nil
		},
	}
}

func run(cfg app.Config) error {
	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("游戏初始化失败: %w", err)
	}
	defer gameApp.Shutdown()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Printf("[Main] Game exited with error: %v", err)
		return err
	}
	return nil
}
