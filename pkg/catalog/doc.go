/*
Package catalog exposes the bundled provider templates as an immutable tree.

	            +-------------+
	            |   Catalog   |
	            |   (root)    |
	            +------+------+
	                   |
	      +------------+------------+
	      |                         |
	+-----+-----+             +-----+-----+
	|  claude/  |             |  cursor/  |
	|  (Dir)    |    ...      |  (Dir)    |
	+-----+-----+             +-----------+
	      |
	+-----+-----+
	|  .claude/ |
	|  (Dir)    |
	+-----------+

🎯 Purpose:
- Reads an fs.FS once and keeps it in memory for the life of the process
- Looks providers up by exact path
- Finds the hidden .provider directory of a provider

🔄 Flow:
1. Default builds the catalog from the embedded templates on first use
2. Callers list or look up provider directories
3. The extractor walks the returned Dir

📝 Entries keep the order fs.ReadDir reports them in. Nothing in the catalog
is ever modified after New returns, so it is safe to share across goroutines.

🔍 Example:

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	dir, ok := cat.GetDirectory("claude")
	if !ok {
		return nil
	}

	hidden, ok := cat.FindChildDirectory(dir, ".claude")
*/
package catalog
