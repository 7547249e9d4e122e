package util

import "github.com/spf13/viper"

// GetLenient returns whether malformed dataset rows are skipped instead of aborting the load.
// Lenient mode is enabled with --lenient or OCA_LENIENT=true.
func GetLenient() bool {
	return viper.GetBool("lenient")
}
