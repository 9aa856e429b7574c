/*
Copyright © 2026 the Despike authors.
This file is part of Despike.

Despike is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Despike is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Despike.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package despikeutil holds the command-line interface for Despike.
package despikeutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/despike"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to Despike.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "input",
			usage: `
              input is the path to the file holding the geometries to be
              cleaned. Shapefiles (.shp) and GeoJSON (.geojson or .json)
              files are supported.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cleanCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the path the cleaned geometries should be written
              to. The format is chosen by the file extension, as for input.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cleanCmd.Flags()},
		},
		{
			name: "angle",
			usage: `
              angle is the interior angle threshold in degrees. Vertices
              with an interior angle smaller than this threshold are
              considered spikes. Must be greater than 0 and less than 180.`,
			shorthand:  "a",
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{cleanCmd.Flags()},
		},
		{
			name: "distance",
			usage: `
              distance is an optional length threshold in the units of the
              data. When greater than zero, a spike is only removed if it is
              within this distance of both of its neighbors; sharp but
              large-scale features are kept. Zero disables the test.`,
			shorthand:  "d",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{cleanCmd.Flags()},
		},
		{
			name: "max-passes",
			usage: `
              max-passes is the maximum number of filter passes over each
              ring. With more than one pass, filtering repeats until a pass
              removes nothing or the limit is reached.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{cleanCmd.Flags()},
		},
		{
			name: "skip-invalid",
			usage: `
              skip-invalid causes rows that cannot be processed, for example
              because their geometry type is unsupported, to be passed
              through unchanged and reported, instead of aborting the run.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{cleanCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("DESPIKE")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(cleanCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("despike: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "despike",
	Short: "Remove spikes from lines and polygons in geospatial data.",
	Long: `Despike removes spike vertices from the lines and polygons in
geospatial data files, keeping everything else about the data unchanged.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'DESPIKE_var' where 'var' is
the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Despike.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Despike v%s\n", despike.Version)
	},
	DisableAutoGenTag: true,
}

// cleanCmd runs the spike filter over a file.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove spike vertices from a file.",
	Long: `clean reads the geometries in the input file, removes their spike
vertices, and writes the result to the output file. All attribute data and
the spatial reference are passed through unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := Cfg.GetString("input")
		if input == "" {
			return fmt.Errorf("despike: you need to specify an input file with --input")
		}
		output := Cfg.GetString("output")
		if output == "" {
			return fmt.Errorf("despike: you need to specify an output file with --output")
		}
		return Clean(input, output, despike.Config{
			Angle:       Cfg.GetFloat64("angle"),
			Distance:    Cfg.GetFloat64("distance"),
			MaxPasses:   Cfg.GetInt("max-passes"),
			SkipInvalid: Cfg.GetBool("skip-invalid"),
		})
	},
	DisableAutoGenTag: true,
}
