/*
Package scaffold resolves provider selections and scaffolds them from the catalog.

	+-----------+      +-----------+      +-----------+
	| Selection | ---> |  Resolve  | ---> | Operator  |
	| --all/-p  |      |  names    |      |  Run      |
	+-----------+      +-----------+      +-----+-----+
	                                            |
	                                +-----------+-----------+
	                                |                       |
	                          +-----+-----+           +-----+-----+
	                          |  hidden   |           | templates |
	                          |   mode    |           |   mode    |
	                          +-----------+           +-----------+

🎯 Purpose:
- Expands --all to every top-level catalog directory
- Looks every provider up and picks what to extract for the selected mode
- Skips missing providers with a warning instead of failing

🔄 Modes:
- hidden: <provider>/.<provider> is extracted into the working directory with its own path stripped
- templates: <provider> is extracted under <workdir>/templates with the provider segment kept

⚡ Errors:
- Missing provider or hidden directory: warning, recorded in Result.Skipped
- Empty selection: warning, success
- File system failure: returned, aborts the run

🔍 Example:

	op, err := scaffold.New(scaffold.Options{
		Catalog:   cat,
		Extractor: ex,
		WorkDir:   wd,
		Mode:      scaffold.ModeHidden,
	})
	if err != nil {
		return err
	}

	result, err := op.Run(ctx, scaffold.Selection{Providers: []string{"claude"}})
*/
package scaffold
