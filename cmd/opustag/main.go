// Command opustag inspects and edits the comments of Ogg Opus files.
//
// Usage:
//
//	opustag -in song.opus
//	opustag -in song.opus -set TITLE=Song -set ARTIST=Band -delete COMMENT
//	opustag -in song.opus -set-cover front.png -cover-desc "album art"
//	opustag -in song.opus -export-cover front.png
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saecki/opusmeta"
)

// stringList collects repeatable flag values.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var sets, deletes stringList
	in := flag.String("in", "", "Opus file to inspect or edit")
	flag.Var(&sets, "set", "TAG=VALUE comment to set, replacing existing values (repeatable)")
	flag.Var(&deletes, "delete", "comment tag to delete (repeatable)")
	setCover := flag.String("set-cover", "", "image file to embed as cover art")
	coverType := flag.Uint("cover-type", uint(opusmeta.PictureTypeCoverFront), "picture type ordinal (0-20) for -set-cover")
	coverDesc := flag.String("cover-desc", "", "description for -set-cover")
	exportCover := flag.String("export-cover", "", "write the front cover's image data to this file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: opustag -in <file.opus> [-set TAG=VALUE]... [-delete TAG]... [-set-cover img] [-export-cover out]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	tag, err := opusmeta.ReadFromPath(*in)
	if err != nil {
		log.WithError(err).Fatal("reading comments")
	}
	log.WithField("file", *in).Debug("comments read")

	dirty := false

	for _, s := range sets {
		name, value, found := strings.Cut(s, "=")
		if !found {
			log.WithField("arg", s).Fatal("-set requires TAG=VALUE")
		}
		tag.SetEntries(opusmeta.ToLowercase(name), []string{value})
		dirty = true
	}

	for _, name := range deletes {
		if _, ok := tag.RemoveEntries(opusmeta.ToLowercase(name)); ok {
			dirty = true
		} else {
			log.WithField("tag", name).Warn("no such tag")
		}
	}

	if *setCover != "" {
		pt, err := opusmeta.PictureTypeFromUint32(uint32(*coverType))
		if err != nil {
			log.WithError(err).Fatal("invalid -cover-type")
		}
		pic, err := opusmeta.ReadPictureFromPath(*setCover, "")
		if err != nil {
			log.WithError(err).Fatal("reading cover image")
		}
		pic.Type = pt
		pic.Description = *coverDesc
		if err := tag.AddPicture(pic); err != nil {
			log.WithError(err).Fatal("embedding cover image")
		}
		log.WithFields(logrus.Fields{
			"mime": pic.MIMEType,
			"type": pic.Type.String(),
			"size": len(pic.Data),
		}).Debug("cover embedded")
		dirty = true
	}

	if *exportCover != "" {
		pic, ok := tag.GetPictureType(opusmeta.PictureTypeCoverFront)
		if !ok {
			log.Fatal("no front cover stored")
		}
		if err := os.WriteFile(*exportCover, pic.Data, 0o644); err != nil {
			log.WithError(err).Fatal("writing cover image")
		}
		log.WithFields(logrus.Fields{
			"out":  *exportCover,
			"mime": pic.MIMEType,
		}).Info("cover exported")
	}

	if dirty {
		if err := tag.WriteToPath(*in); err != nil {
			log.WithError(err).Fatal("rewriting file")
		}
		log.WithField("file", *in).Info("comments rewritten")
		return
	}

	printTag(tag)
}

// printTag dumps vendor, comments, and the picture inventory.
func printTag(tag *opusmeta.Tag) {
	fmt.Printf("vendor: %s\n", tag.Vendor())

	var keys []string
	for k := range tag.Keys() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range tag.Get(opusmeta.ToLowercase(k)) {
			fmt.Printf("%s=%s\n", k, v)
		}
	}

	for _, pic := range tag.Pictures() {
		fmt.Printf("picture: %s, %s, %d bytes", pic.Type, pic.MIMEType, len(pic.Data))
		if pic.Description != "" {
			fmt.Printf(", %q", pic.Description)
		}
		fmt.Println()
	}
}
