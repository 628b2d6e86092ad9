package svmcmd

import (
	"fmt"
	"io"

	"go.brendoncarroll.net/star"

	"synvm.dev/synvm/isa"
	"synvm.dev/synvm/svmimage"
)

var infoCmd = star.Command{
	Metadata: star.Metadata{
		Short: "print the size and content ID of an image",
	},
	Pos: []star.IParam{imageParam},
	F: func(c star.Context) error {
		return PrintInfo(c.StdOut, imageParam.Load(c))
	},
}

// PrintInfo writes a summary of img to w.
func PrintInfo(w io.Writer, img svmimage.Image) error {
	var entry string
	if len(img) > 0 {
		entry = isa.Op(img[0]).String()
	}
	_, err := fmt.Fprintf(w, "WORDS\t%d\nBYTES\t%d\nENTRY\t%s\nID\t%v\n",
		img.Words(), img.Words()*2, entry, img.ID())
	return err
}
