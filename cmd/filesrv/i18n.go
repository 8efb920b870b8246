package main

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("zh", l10n.LexiconMap{
		// Root command
		"Work with a remote file server":                                     "操作远程文件服务器",
		"Configuration file (default: $XDG_CONFIG_HOME/filesrv/config.yaml)": "配置文件（默认：$XDG_CONFIG_HOME/filesrv/config.yaml）",
		"Server base address":                                                "服务器地址",
		"Shared secret":                                                      "密码",
		"Runtime mode (http, mock, auto)":                                    "运行模式（http、mock、auto）",
		"Seed file for mock mode":                                            "模拟模式的种子文件",
		"Log level (debug, info, warn, error)":                               "日志级别（debug、info、warn、error）",
		"Suppress all log output":                                            "不输出日志",

		// Commands
		"Check whether the server is online":             "服务器在线?",
		"Check whether the shared secret is accepted":    "密码正确?",
		"List a directory":                               "列出目录",
		"Print the listing as JSON text":                 "以 JSON 文本输出列表",
		"Create a directory":                             "创建目录",
		"Create an empty file":                           "创建文件",
		"Replace the content of a file":                  "写入内容",
		"Print the content of a file":                    "读取文件",
		"Delete a file or directory":                     "删除文件或目录",
		"List the available blocks":                      "列出可用积木",
		"Run a block by opcode":                          "按操作码执行积木",
		"Manage the configuration file":                  "管理配置文件",
		"Write a configuration file with default values": "写入默认配置文件",
		"Overwrite an existing file":                     "覆盖已有文件",
		"Print the effective configuration":              "输出当前配置",
		"Print the shared secret in clear":               "明文输出密码",

		// Output
		"online":            "在线",
		"offline":           "离线",
		"password accepted": "密码正确",
		"password rejected": "密码错误",
		"Name":              "名称",
		"Type":              "类型",
		"Size":              "大小",
		"Opcode":            "操作码",
		"Arguments":         "参数",

		// Errors
		"missing opcode":                              "缺少操作码",
		"invalid argument %q, want KEY=VALUE":         "无效参数 %q，应为 KEY=VALUE",
		"%s expects %d argument(s), got %d":           "%s 需要 %d 个参数，实际 %d 个",
		"%s already exists, use --force to overwrite": "%s 已存在，使用 --force 覆盖",
	})
}
