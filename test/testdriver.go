package test

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"voyager.com/roguepoker/gamescript"
)

var testDriverLogger = log.With().Str("logger_name", "test::testdriver").Logger()

type ScriptTestResult struct {
	Filename string
	Passed   bool
	Failures []error
	Disabled bool
}

func (s *ScriptTestResult) addError(e error) {
	s.Failures = append(s.Failures, e)
}

// runs game scripts and captures the results
// and output the results at the end
type TestDriver struct {
	ScriptResult map[string]*ScriptTestResult
	ScriptFiles  []string
}

func NewTestDriver() *TestDriver {
	return &TestDriver{ScriptResult: make(map[string]*ScriptTestResult), ScriptFiles: make([]string, 0)}
}

func (t *TestDriver) RunGameScript(filename string) *ScriptTestResult {
	result := &ScriptTestResult{Filename: filename, Failures: make([]error, 0)}
	t.ScriptResult[filename] = result
	t.ScriptFiles = append(t.ScriptFiles, filename)

	script, err := gamescript.ReadGameScript(filename)
	if err != nil {
		testDriverLogger.Error().Msg(fmt.Sprintf("Failed to load game script %s. Error: %v", filename, err))
		result.addError(err)
		return result
	}
	if script.Disabled {
		result.Disabled = true
		return result
	}

	testDriverLogger.Info().Msg(fmt.Sprintf("Running game script %s", filename))
	runner := &scriptRunner{script: script, result: result}
	if err := runner.run(); err != nil {
		result.addError(err)
	}
	result.Passed = len(result.Failures) == 0
	return result
}

func (t *TestDriver) ReportResult() bool {
	passed := true
	for _, scriptFile := range t.ScriptFiles {
		result := t.ScriptResult[scriptFile]
		if result.Disabled {
			fmt.Printf("Script %s is disabled\n", result.Filename)
			continue
		}

		if len(result.Failures) != 0 {
			passed = false
			// failed and report errors
			color.Red("Script %s failed\n", scriptFile)
			fmt.Printf("===========================\n")
			for _, e := range result.Failures {
				fmt.Printf("%s\n", e.Error())
			}
			fmt.Printf("===========================\n")
		} else {
			color.Green("Script %s passed\n", scriptFile)
		}
	}
	return passed
}

// ScriptFiles returns the YAML scripts under fileOrDir, or fileOrDir itself when it is a file.
// A non-empty testName keeps only the script with that base name.
func ScriptFiles(fileOrDir string, testName string) ([]string, error) {
	info, err := os.Stat(fileOrDir)
	if err != nil {
		return nil, err
	}
	var files []string
	if !info.IsDir() {
		files = append(files, fileOrDir)
	} else {
		entries, err := ioutil.ReadDir(fileOrDir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := filepath.Ext(entry.Name())
			if ext != ".yaml" && ext != ".yml" {
				continue
			}
			files = append(files, filepath.Join(fileOrDir, entry.Name()))
		}
	}
	if testName != "" {
		var filtered []string
		for _, file := range files {
			if strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) == testName {
				filtered = append(filtered, file)
			}
		}
		files = filtered
	}
	sort.Strings(files)
	return files, nil
}

// RunGameScriptTests runs the scripts and reports the results.
func RunGameScriptTests(fileOrDir string, testName string) error {
	files, err := ScriptFiles(fileOrDir, testName)
	if err != nil {
		return fmt.Errorf("Failed to get game scripts from %s: %v", fileOrDir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("No game scripts found in %s", fileOrDir)
	}

	testDriver := NewTestDriver()
	for _, file := range files {
		testDriver.RunGameScript(file)
	}

	if !testDriver.ReportResult() {
		return fmt.Errorf("Game script tests failed")
	}
	fmt.Printf("All scripts passed\n")
	return nil
}
