// Package utils provides small helpers shared by the commands and the HTTP
// features, such as region file name parsing.
package utils
