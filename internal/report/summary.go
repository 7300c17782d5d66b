package report

import "github.com/temirov/gitscan/internal/repos/shared"

// Summary tallies scan results by kind and repository status.
type Summary struct {
	Repositories  int `yaml:"repositories"`
	Clean         int `yaml:"clean"`
	Dirty         int `yaml:"dirty"`
	Unpushed      int `yaml:"unpushed"`
	Errors        int `yaml:"error"`
	Uninitialized int `yaml:"uninitialized"`
	Unreadable    int `yaml:"unreadable"`
}

// Summarize counts the provided results.
func Summarize(results []shared.ScanResult) Summary {
	var summary Summary
	for _, result := range results {
		switch result.Kind {
		case shared.ResultKindRepository:
			summary.Repositories++
			switch result.Status {
			case shared.RepositoryStatusClean:
				summary.Clean++
			case shared.RepositoryStatusDirty:
				summary.Dirty++
			case shared.RepositoryStatusUnpushed:
				summary.Unpushed++
			case shared.RepositoryStatusError:
				summary.Errors++
			}
		case shared.ResultKindUninitialized:
			summary.Uninitialized++
		case shared.ResultKindUnreadable:
			summary.Unreadable++
		}
	}
	return summary
}

type groupedResults struct {
	repositories  []shared.ScanResult
	uninitialized []shared.ScanResult
	unreadable    []shared.ScanResult
}

func groupResults(results []shared.ScanResult) groupedResults {
	var groups groupedResults
	for _, result := range results {
		switch result.Kind {
		case shared.ResultKindRepository:
			groups.repositories = append(groups.repositories, result)
		case shared.ResultKindUninitialized:
			groups.uninitialized = append(groups.uninitialized, result)
		case shared.ResultKindUnreadable:
			groups.unreadable = append(groups.unreadable, result)
		}
	}
	return groups
}
