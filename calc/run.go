/*
 * run.go, part of goxtb.
 *
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package calc

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	chem "github.com/rmera/goxtb"
)

//Names of the files the runner itself creates in the run directory.
const (
	OutputFileName = "output.out"
	ErrorFileName  = "error.out"
)

// Run executes the calculation's external process and blocks until it
// exits. The run directory is emptied and re-created, the input geometry is
// written to it as input.xyz, and stdout and stderr are captured to
// output.out and error.out for later inspection. No timeout is imposed;
// callers wanting one must supervise externally and call Kill.
//
// Only one run per Calculation may be in flight; a second concurrent call
// fails with a ConcurrentRunError. A non-zero exit status does not by
// itself fail the run: the engines sometimes exit non-zero while still
// producing usable output, so the exit code is recorded as metadata and
// the produced files are parsed regardless.
func (c *Calculation) Run() error {
	const errid = "Run: "
	c.mu.Lock()
	if c.status == Running {
		c.mu.Unlock()
		return &ConcurrentRunError{Dir: c.dir}
	}
	c.status = Running
	c.killed = false
	c.mu.Unlock()

	if err := c.seedDir(); err != nil {
		c.setStatus(Failed)
		return fmt.Errorf(errid+"%w", err)
	}
	outf, err := os.Create(filepath.Join(c.dir, OutputFileName))
	if err != nil {
		c.setStatus(Failed)
		return fmt.Errorf(errid+"%w", err)
	}
	defer outf.Close()
	errf, err := os.Create(filepath.Join(c.dir, ErrorFileName))
	if err != nil {
		c.setStatus(Failed)
		return fmt.Errorf(errid+"%w", err)
	}
	defer errf.Close()

	cmd := exec.Command(c.program.Path, c.args...)
	cmd.Dir = c.dir
	cmd.Stdout = outf
	cmd.Stderr = errf
	//the engines fork helpers, so the whole process group must be killable
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	log.Printf("goxtb: running %s %v in %s", c.program.Path, c.args, c.dir)
	if err := cmd.Start(); err != nil {
		c.setStatus(Failed)
		return &LaunchError{Path: c.program.Path, Err: err}
	}
	c.mu.Lock()
	c.cmd = cmd
	c.mu.Unlock()

	waitErr := cmd.Wait()
	exit := cmd.ProcessState.ExitCode()
	c.mu.Lock()
	c.cmd = nil
	killed := c.killed
	c.exitCode = exit
	c.mu.Unlock()
	if killed {
		c.setStatus(Failed)
		return fmt.Errorf(errid + "process was killed before completion")
	}
	if waitErr != nil {
		//non-zero exit: keep going, the outputs decide what we got
		log.Printf("goxtb: %s exited with code %d", c.program.Name, exit)
	}
	c.process()
	c.setStatus(Completed)
	return nil
}

// Kill forcefully terminates the in-flight process and its whole process
// group, children included. It fails if no run is in flight. The pending
// Run call returns with the calculation in the Failed state and no output
// parsing attempted.
func (c *Calculation) Kill() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cmd == nil || c.cmd.Process == nil {
		return fmt.Errorf("Kill: no process running")
	}
	c.killed = true
	return syscall.Kill(-c.cmd.Process.Pid, syscall.SIGKILL)
}

//seedDir empties and re-creates the run directory, then writes the input
//geometry to it. Emptying first means stale artifacts from a previous run
//can never be mistaken for this run's output.
func (c *Calculation) seedDir() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	for name, g := range c.aux {
		if err := chem.XYZWrite(filepath.Join(c.dir, name), g, ""); err != nil {
			return err
		}
	}
	return chem.XYZWrite(filepath.Join(c.dir, InputFileName), c.input, "")
}

func (c *Calculation) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}
