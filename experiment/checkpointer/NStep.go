package checkpointer

// nStep implements checkpointing every N completed cells
type nStep struct {
	interval int
	object   Serializable // Object to save

	// filename returns the name of the file to save the object in.
	//
	// If each checkpoint should be kept in a separate file with an
	// incrementing suffix (e.g. file1.bin, file2.bin, ..., fileK.bin),
	// use FilenameEnumerator. If checkpoints should overwrite each
	// other, use a function returning a constant name.
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n completed
// cells.
func NewNStep(n int, object Serializable,
	filename func() string) Checkpointer {
	if n < 1 {
		n = 1
	}
	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint saves the Checkpointer's tracked object if completed is a
// multiple of the checkpointing interval
func (n *nStep) Checkpoint(completed int) error {
	if completed > 0 && completed%n.interval == 0 {
		return n.object.SaveAs(n.filename())
	}
	return nil
}
