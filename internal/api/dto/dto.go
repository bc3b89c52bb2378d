// Package dto defines the request and response bodies of the admin API
package dto

import "slices"

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setList(dst *[]string, v *[]string) {
	if v == nil {
		return
	}
	*dst = slices.Clone(*v)
	if *dst == nil {
		*dst = []string{}
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
