// Package migrations 版本化的MySQL建表脚本,由golang-migrate执行
package migrations

import "embed"

// FS 内嵌的迁移脚本
//
//go:embed *.sql
var FS embed.FS
