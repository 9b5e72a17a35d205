// Package web embeds the stylesheet and the small script that reports scroll
// metrics and performs smooth scrolling.
package web

import "embed"

//go:embed static/*
var StaticFS embed.FS
