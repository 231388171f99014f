package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Globals struct {
	RunId       ulid.ULID
	MaxSamples  int
	Reporter    *Reporter
	RunnerError chan error
}

var global = &Globals{
	RunnerError: make(chan error, 10),
}

var (
	cfgFile   string
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "prngstat",
	Short: "Statistical summaries of classic pseudo-random generators.",
	Long: `Statistical summaries of classic pseudo-random generators.
Runs each configured generator until it repeats or the sample bound is hit,
then prints min, max, mean, period and the bit frequency table. For example:
  prngstat --max-samples=100k
  prngstat --config=./config.yaml --csv --parallel`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetDefault("max_samples", "100000")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("reporter.csv", false)
	viper.SetDefault("runners.parallel", false)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.* or $HOME/.prngstat/config.*)")
	flags.String("max-samples", "100000", "upper bound on samples per generator (100000, 100k, 1e5)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("csv", false, "write bit frequencies to bitfreq.<run id>.csv")
	flags.Bool("parallel", false, "analyse generators concurrently")

	_ = viper.BindPFlag("max_samples", flags.Lookup("max-samples"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("reporter.csv", flags.Lookup("csv"))
	_ = viper.BindPFlag("runners.parallel", flags.Lookup("parallel"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".prngstat"))
		}
	}

	viper.SetEnvPrefix("prngstat")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing default config is fine; an explicit or broken one is not.
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = err
		}
	}
}

func run() error {
	var err error
	logger := Logger()

	if configErr != nil {
		logger.Errorf("error reading config file: %s", configErr)
		return configErr
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Infof("using config file %s", used)
	}

	global.MaxSamples, err = parseSampleCount(viper.GetString("max_samples"))
	if err != nil {
		logger.Errorf("invalid max_samples: %s", err)
		return err
	}

	specs, err := loadGeneratorSpecs(viper.Get("generators"))
	if err != nil {
		logger.Errorf("invalid generators: %s", err)
		return err
	}

	global.RunId = ulid.Make()
	logger.Infof("run %s: %d generators, %d samples max", global.RunId, len(specs), global.MaxSamples)

	reporterConfig := &ReporterConfig{Out: os.Stdout}
	if viper.GetBool("reporter.csv") {
		reporterConfig.CSVPath = fmt.Sprintf("bitfreq.%s.csv", global.RunId)
	}

	global.Reporter, err = NewReporter(reporterConfig)
	if err != nil {
		logger.Errorf("failed creating reporter: %s", err)
		return err
	}

	runners := NewRunnerList(viper.GetBool("runners.parallel"))
	for i, spec := range specs {
		r, err := NewAnalysisRunner(spec, i)
		if err != nil {
			logger.Errorf("error initializing runner: %s", err)
			global.Reporter.Stop()
			return err
		}
		runners.AddRunner(r)
	}

	done := make(chan struct{})
	runners.Start()
	go func() {
		runners.Wait()
		close(done)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	select {
	case <-sig:
		logger.Infof("Control-C, stopping.")
	case <-done:
	}

	runners.Stop()
	global.Reporter.Stop()

	var failed []error
	for {
		select {
		case err = <-global.RunnerError:
			logger.Errorf("runner error: %s", err)
			failed = append(failed, err)
			continue
		default:
		}
		break
	}

	return errors.Join(failed...)
}
