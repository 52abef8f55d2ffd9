package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/patch-tuesday/config"
	"github.com/aquasecurity/patch-tuesday/msrc"
	"github.com/aquasecurity/patch-tuesday/utils"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

type flags struct {
	date            string
	years           string
	product         string
	severity        string
	title           string
	acknowledgement string
	format          string
	configPath      string

	dateSet  bool
	yearsSet bool
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("patch-tuesday", flag.ContinueOnError)
	fs.StringVar(&f.date, "date", msrc.CurrentPeriod(time.Now()), "date from which to obtain information (e.g. 2021-Jan)")
	fs.StringVar(&f.years, "year", "", "year(s) from which to obtain information separated by comma (e.g. 2021,2022)")
	fs.StringVar(&f.product, "product", "", "product ID to filter by, All, Win10_1809_x64 or Win11_22H2_x64 (default from config: Win10_1809_x64)")
	fs.StringVar(&f.severity, "severity", "", "filter by severity (Critical, Important, Moderate, High, Medium, Low, None)")
	fs.StringVar(&f.title, "title", "", "filter by text contained in the title")
	fs.StringVar(&f.acknowledgement, "acknowledgement", "", "filter by text contained in the acknowledgements")
	fs.StringVar(&f.format, "format", "", "output format (text, json, yaml)")
	fs.StringVar(&f.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "date":
			f.dateSet = true
		case "year":
			f.yearsSet = true
		}
	})
	if f.dateSet && f.yearsSet {
		return flags{}, xerrors.New("-date and -year are mutually exclusive")
	}
	return f, nil
}

func parseYears(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, xerrors.New("years must be specified")
	}

	var years []int
	for _, y := range strings.Split(s, ",") {
		year, err := strconv.Atoi(strings.TrimSpace(y))
		if err != nil {
			return nil, xerrors.Errorf("invalid years: %w", err)
		}
		years = append(years, year)
	}
	return years, nil
}

func run(args []string, stdout io.Writer) error {
	f, err := parseFlags(args)
	if xerrors.Is(err, flag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}

	configPath := utils.LookupEnv("PATCH_TUESDAY_CONFIG", config.DefaultPath())
	if f.configPath != "" {
		configPath = f.configPath
	}
	conf, err := config.Load(afero.NewOsFs(), configPath, f.configPath != "")
	if err != nil {
		return xerrors.Errorf("config error: %w", err)
	}

	filter, err := buildFilter(f, conf)
	if err != nil {
		return err
	}

	format := f.format
	if format == "" {
		format = conf.Format
	}
	outputFormat, err := msrc.ParseFormat(format)
	if err != nil {
		return err
	}

	c := msrc.NewConfig(
		msrc.WithURL(conf.URL),
		msrc.WithAPIKey(conf.APIKey),
		msrc.WithConcurrency(conf.Concurrency),
		msrc.WithProgressBar(isTerminal(os.Stderr)),
	)

	var vulns []msrc.Vulnerability
	if f.yearsSet {
		years, err := parseYears(f.years)
		if err != nil {
			return err
		}
		vulns = c.FetchYears(years).Vulnerabilities
	} else {
		period, err := msrc.ParsePeriod(f.date)
		if err != nil {
			return err
		}
		vulns, err = c.Fetch(period)
		if xerrors.Is(err, msrc.ErrNoUpdate) {
			fmt.Fprintln(stdout, err)
			return nil
		} else if err != nil {
			return xerrors.Errorf("error in MSRC update: %w", err)
		}
	}

	return msrc.Write(stdout, outputFormat, filter.Apply(vulns))
}

func buildFilter(f flags, conf config.Config) (msrc.Filter, error) {
	filter := msrc.Filter{
		Title:           f.title,
		Acknowledgement: f.acknowledgement,
	}

	if f.severity != "" {
		severity, err := msrc.ParseSeverity(f.severity)
		if err != nil {
			return msrc.Filter{}, err
		}
		filter.Severity = &severity
	}

	product := f.product
	if product == "" {
		product = conf.Product
	}
	p, err := msrc.ParseProduct(product)
	if err != nil {
		return msrc.Filter{}, err
	}
	filter.Product = p

	return filter, nil
}

// isTerminal reports whether f is attached to a terminal, e.g. to keep progress
// bars out of redirected logs.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
