package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	// 级别颜色
	debugColor = color.New(color.FgHiBlue)
	infoColor  = color.New(color.FgHiCyan)
	warnColor  = color.New(color.FgHiYellow)
	errorColor = color.New(color.FgHiRed)
	fatalColor = color.New(color.FgHiRed, color.Bold)

	prefixColor = color.New(color.FgHiBlue)
)

// colorWriter 为标准库 logger 的输出目标
type colorWriter struct{}

// Write 实现 io.Writer 接口
func (cw *colorWriter) Write(p []byte) (int, error) {
	// 解析调用者信息 (文件名、行号)
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		file = "???"
		line = 0
	}
	file = filepath.Base(file)
	now := time.Now().Format("2006/01/02 15:04:05.000")

	msg := strings.TrimRight(string(p), "\n")

	// 根据前缀判断日志级别并设置颜色
	levelColor := infoColor
	levelTag := ""
	switch {
	case strings.HasPrefix(msg, "[DEBUG]"):
		levelColor, levelTag = debugColor, "[DEBUG]"
	case strings.HasPrefix(msg, "[INFO]"):
		levelColor, levelTag = infoColor, "[INFO]"
	case strings.HasPrefix(msg, "[WARN]"):
		levelColor, levelTag = warnColor, "[WARN]"
	case strings.HasPrefix(msg, "[ERROR]"):
		levelColor, levelTag = errorColor, "[ERROR]"
	case strings.HasPrefix(msg, "[FATAL]"):
		levelColor, levelTag = fatalColor, "[FATAL]"
	}

	var sb strings.Builder
	sb.WriteString(prefixColor.Sprint(fmt.Sprintf("%s %s:%d", now, file, line)))
	sb.WriteByte(' ')
	if levelTag != "" {
		msg = strings.TrimSpace(strings.TrimPrefix(msg, levelTag))
		sb.WriteString(levelColor.Sprint(levelTag))
		sb.WriteByte(' ')
	}
	sb.WriteString(msg)
	sb.WriteByte('\n')

	_, _ = os.Stdout.WriteString(sb.String())
	return len(p), nil
}

func init() {
	// 替换标准库日志输出
	log.SetOutput(&colorWriter{})
	log.SetFlags(0)
}

func Debug(format string, v ...interface{}) {
	log.Printf("[DEBUG] "+format, v...)
}

func Info(format string, v ...interface{}) {
	log.Printf("[INFO] "+format, v...)
}

func Warn(format string, v ...interface{}) {
	log.Printf("[WARN] "+format, v...)
}

func Error(format string, v ...interface{}) {
	log.Printf("[ERROR] "+format, v...)
}

func Fatal(format string, v ...interface{}) {
	log.Printf("[FATAL] "+format, v...)
	os.Exit(1)
}
